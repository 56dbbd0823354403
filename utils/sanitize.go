package utils

import "strings"

const maxObjectNameLen = 100

// SanitizeObjectName makes a client supplied filename safe to embed in an
// object key. Anything outside [A-Za-z0-9._-] becomes '_', leading dots are
// dropped and the result is capped at 100 bytes.
func SanitizeObjectName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	clean := strings.TrimLeft(b.String(), ".")
	if len(clean) > maxObjectNameLen {
		clean = clean[:maxObjectNameLen]
	}
	if clean == "" {
		return "upload"
	}
	return clean
}
