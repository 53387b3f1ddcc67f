package common

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// It is the only form in which emails are compared or stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// It is used to drop typed passwords from memory once they are handed over.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
