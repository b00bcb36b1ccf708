package values

import (
	"fmt"
	"strings"
)

// Identifier is a name: a non-empty string whose first character is a
// letter or underscore and whose remaining characters are alphanumeric,
// underscore, or hyphen.
type Identifier string

// ValidIdentifier reports whether s satisfies the identifier grammar in
// spec §3.1.
func ValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9'):
		case i > 0 && r == '-':
		default:
			return false
		}
	}
	return true
}

// TokenPath is an ordered sequence of identifier segments, e.g.
// "colors.primary" => {"colors", "primary"}.
type TokenPath []string

// ParseTokenPath splits a dotted path into its segments and validates
// each one is a legal identifier.
func ParseTokenPath(dotted string) (TokenPath, error) {
	if dotted == "" {
		return nil, fmt.Errorf("token path: empty path")
	}
	segments := strings.Split(dotted, ".")
	for _, seg := range segments {
		if !ValidIdentifier(seg) {
			return nil, fmt.Errorf("token path %q: invalid segment %q", dotted, seg)
		}
	}
	return TokenPath(segments), nil
}

// String renders the path back to its dotted form.
func (p TokenPath) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether two token paths name the same segments in order.
func (p TokenPath) Equal(other TokenPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
