package bundler

import "strings"

// AssignOwner returns the module owning typeName: a module whose name occurs
// in typeName (case-sensitive). With several matches the longest name wins;
// equal lengths go to the earliest module in moduleNames.
func AssignOwner(typeName string, moduleNames []string) (string, bool) {
	owner, found := "", false
	for _, m := range moduleNames {
		if m == "" || !strings.Contains(typeName, m) {
			continue
		}
		if !found || len(m) > len(owner) {
			owner, found = m, true
		}
	}
	return owner, found
}
