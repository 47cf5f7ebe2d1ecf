package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultHexLength is the number of hex digits in generated asset tag suffixes.
const DefaultHexLength = 6

// RandomHex returns length upper-case hexadecimal digits from crypto/rand.
func RandomHex(length int) (string, error) {
	if length <= 0 {
		length = DefaultHexLength
	}
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf))[:length], nil
}

// WithPrefix returns prefix + "-" + RandomHex(length), e.g. TAG-3F9A0C.
func WithPrefix(prefix string, length int) (string, error) {
	suffix, err := RandomHex(length)
	if err != nil {
		return "", err
	}
	return prefix + "-" + suffix, nil
}
