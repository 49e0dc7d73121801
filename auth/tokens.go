package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// RememberTokenBytes is the byte size of a generated remember token.
const RememberTokenBytes = 32

// MakeRememberToken generates a remember token of a predetermined byte size.
func MakeRememberToken() (string, error) {
	return randomString(RememberTokenBytes)
}

// NBytes returns the number of bytes used in a base64 URL encoded string.
func NBytes(base64String string) (int, error) {
	b, err := base64.URLEncoding.DecodeString(base64String)
	if err != nil {
		return -1, err
	}
	return len(b), nil
}

// randomString generates a byte slice of size nBytes using crypto/rand and
// returns its base64 URL encoded form.
func randomString(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
