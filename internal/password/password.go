// Package password turns plaintext passwords into stored digests and
// checks them back.
//
// New digests are bcrypt by default. The unsalted hex SHA-256 format of
// the original invoice database is still produced when Legacy is set and
// is always accepted by Verify, so old databases keep working.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const legacyDigestLen = sha256.Size * 2

type Hasher struct {
	Legacy bool
	Cost   int // bcrypt cost, bcrypt.DefaultCost when zero
}

func (h Hasher) Hash(password string) (string, error) {
	if h.Legacy {
		return LegacyDigest(password), nil
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// LegacyDigest is the deterministic hex SHA-256 of the password.
func LegacyDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func Verify(password, digest string) bool {
	if strings.HasPrefix(digest, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	if len(digest) != legacyDigestLen {
		return false
	}
	want := LegacyDigest(password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(digest))) == 1
}
