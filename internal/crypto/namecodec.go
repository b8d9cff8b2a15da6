package crypto

import (
	"encoding/base64"
	"unicode/utf8"
)

// EncodeSegment encrypts one path segment into a filesystem-legal token:
// the URL-safe base64 rendering of a wire block over the segment's UTF-8
// bytes.
func EncodeSegment(segment string, password []byte) (string, error) {
	block, err := Seal([]byte(segment), password)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(block), nil
}

// DecodeSegment reverses EncodeSegment, returning the decrypted name
// byte for byte. Any failure in the chain, a bad base64 rendering as
// much as a bad tag, yields ErrMalformed; nothing else escapes this
// boundary.
func DecodeSegment(token string, password []byte) (string, error) {
	block, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrMalformed
	}

	name, err := Open(block, password)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(name) {
		return "", ErrMalformed
	}

	return string(name), nil
}
