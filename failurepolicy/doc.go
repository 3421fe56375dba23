// Package failurepolicy declares failure rules over nodes, links, and risk
// groups (spec component G). See Policy.Apply.
package failurepolicy
