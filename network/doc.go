// Package network implements the Node/Link/RiskGroup domain model (spec
// component B) on top of multigraph.Graph: node and link CRUD, enable/
// disable operations including risk-group expansion, and selection of node
// groups by regex or attribute directive.
//
//	go get github.com/networmix/netgraph/network
package network
