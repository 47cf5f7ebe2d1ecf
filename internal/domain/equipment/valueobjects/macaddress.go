package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

var macDigits = regexp.MustCompile(`^[0-9A-F]{12}$`)

var macSeparators = strings.NewReplacer("-", "", ":", "", ".", "", " ", "")

// NormalizeMAC accepts 12 hex digits with any of - : . or space as separators
// and returns them upper-cased in colon pairs, e.g. AA:BB:CC:00:11:22.
func NormalizeMAC(raw string) (string, error) {
	digits := strings.ToUpper(macSeparators.Replace(strings.TrimSpace(raw)))
	if !macDigits.MatchString(digits) {
		return "", fmt.Errorf("invalid MAC address: %s", raw)
	}
	var b strings.Builder
	b.Grow(17)
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(digits[i : i+2])
	}
	return b.String(), nil
}

// NormalizeOptionalMAC returns nil for blank input.
func NormalizeOptionalMAC(raw string) (*string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	mac, err := NormalizeMAC(raw)
	if err != nil {
		return nil, err
	}
	return &mac, nil
}
