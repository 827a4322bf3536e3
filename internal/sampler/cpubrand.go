package sampler

import "regexp"

// xeonNamePattern mirrors the original btop C++ regex for extracting the
// model suffix out of a full Intel CPU brand string: either the text
// between the "(R)..." vendor prefix and "CPU", or the text between "CPU"
// and the trailing "@ d.ddGHz".
var xeonNamePattern = regexp.MustCompile(`^(?:\S+\(R\) ?)+ ?([a-zA-Z0-9\- ]+[^ ])? ?CPU ?([a-zA-Z0-9\- ]+[^ ])? ?@ \d\.\d\dGHz$`)

// ParseXeonName extracts the short model designation from a full CPU brand
// string (e.g. "Intel(R) Xeon(R) CPU E5-2623 v3 @ 3.00GHz" -> "E5-2623 v3").
// Returns "", false when the string doesn't match the expected vendor/CPU/
// clock-speed shape.
func ParseXeonName(name string) (string, bool) {
	m := xeonNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	for _, group := range m[1:] {
		if group != "" {
			return group, true
		}
	}
	return "", false
}
