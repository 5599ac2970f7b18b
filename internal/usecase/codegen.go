package usecase

import (
	"fmt"
	"strings"
)

// GenerateCode derives a scope-unique code from a display name when the
// caller supplies none: upper-snake of the first two whitespace-separated
// tokens of the name, truncated to 24 chars, with a numeric _2, _3, ...
// suffix appended on collision (DESIGN.md Open Question decision #3).
func GenerateCode(name string, existing map[string]bool) string {
	base := baseCode(name)
	if base == "" {
		base = "ITEM"
	}
	if !existing[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if len(candidate) > 24 {
			candidate = candidate[:24]
		}
		if !existing[candidate] {
			return candidate
		}
	}
}

func baseCode(name string) string {
	fields := strings.Fields(name)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	upper := make([]string, 0, len(fields))
	for _, f := range fields {
		cleaned := sanitize(f)
		if cleaned != "" {
			upper = append(upper, cleaned)
		}
	}
	code := strings.ToUpper(strings.Join(upper, "_"))
	if len(code) > 24 {
		code = code[:24]
	}
	return strings.Trim(code, "_")
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
