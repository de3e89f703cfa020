package utils

import "strings"

// MaskSecret keeps a short prefix and suffix of a credential for display.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}

	prefix := secret[:4]
	suffix := secret[len(secret)-4:]
	return prefix + "…" + suffix
}
