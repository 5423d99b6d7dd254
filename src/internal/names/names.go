package names

import "strings"

// Join renders author names as a single "and"-separated field value, the
// shape the merge engine diffs as one string.
func Join(authors []string) string {
	var out []string
	for _, a := range authors {
		if s := strings.TrimSpace(a); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " and ")
}

// Display formats a family/given pair as "Family, Given". Either part may be
// empty.
func Display(family, given string) string {
	family = strings.TrimSpace(family)
	given = strings.TrimSpace(given)
	switch {
	case family == "":
		return given
	case given == "":
		return family
	default:
		return family + ", " + given
	}
}
