package domain

import "strings"

var sanctionTypeLabels = map[int]string{
	1: "Peringatan Tertulis",
	2: "SP1",
	3: "SP2",
}

var sanctionTypeCodes = map[string]int{
	"peringatan tertulis": 1,
	"sp1":                 2,
	"sp2":                 3,
}

// SanctionTypeLabel returns the form label for a sanction severity code.
func SanctionTypeLabel(code int) string {
	if label, ok := sanctionTypeLabels[code]; ok {
		return label
	}

	return "Unknown"
}

// ParseSanctionType returns the severity code for a label (case-insensitive).
func ParseSanctionType(label string) (int, bool) {
	code, ok := sanctionTypeCodes[strings.ToLower(strings.TrimSpace(label))]

	return code, ok
}
