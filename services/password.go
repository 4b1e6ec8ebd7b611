package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 120_000
	pbkdf2KeyLen     = 32
	saltBytes        = 16
)

// HashPassword derives a salted PBKDF2-SHA256 digest and returns it in the
// self-describing "salt$digest" form. A fresh random salt is generated when
// none is supplied, so two hashes of the same password differ.
func HashPassword(password string, salt ...string) string {
	var s string
	if len(salt) > 0 && salt[0] != "" {
		s = salt[0]
	} else {
		buf := make([]byte, saltBytes)
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand failing means the process has no entropy source;
			// there is nothing sensible to continue with.
			panic(fmt.Sprintf("failed to generate salt: %v", err))
		}
		s = hex.EncodeToString(buf)
	}

	digest := pbkdf2.Key([]byte(password), []byte(s), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return s + "$" + hex.EncodeToString(digest)
}

// VerifyPassword re-derives the digest with the salt embedded in stored and
// compares in constant time. A malformed stored form verifies as false
// rather than returning an error.
func VerifyPassword(password, stored string) bool {
	salt, digest, found := strings.Cut(stored, "$")
	if !found {
		return false
	}
	check := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hmac.Equal([]byte(hex.EncodeToString(check)), []byte(digest))
}
