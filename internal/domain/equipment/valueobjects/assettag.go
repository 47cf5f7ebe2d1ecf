package valueobjects

import (
	"fmt"
	"strings"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/id"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/services/sanitize"
)

const maxAssetTagLength = 100

// TagGenerator yields a fresh random asset tag.
type TagGenerator func() (string, error)

// RandomTagGenerator produces PREFIX-XXXXXX tags with six hex digits.
func RandomTagGenerator(prefix string) TagGenerator {
	if prefix == "" {
		prefix = "TAG"
	}
	return func() (string, error) {
		return id.WithPrefix(prefix, id.DefaultHexLength)
	}
}

// ResolveAssetTag picks the supplied tag, else the serial, else a generated one.
// Supplied tags and serials are upper-cased.
func ResolveAssetTag(supplied, serial string, generate TagGenerator) (string, error) {
	tag := sanitize.Identifier(supplied)
	if tag == "" {
		tag = sanitize.Identifier(serial)
	}
	if tag == "" {
		generated, err := generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate asset tag: %w", err)
		}
		tag = strings.ToUpper(generated)
	}
	if len(tag) > maxAssetTagLength {
		return "", fmt.Errorf("asset tag exceeds %d characters", maxAssetTagLength)
	}
	return tag, nil
}
