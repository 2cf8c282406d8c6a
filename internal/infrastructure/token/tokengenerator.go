package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const tokenRandomBytes = 32

// TokenGenerator mints opaque device credentials and hashes them for
// storage. The same generator must be used on the issuing side (pairing) and
// the verifying side (session resolution); the hash is an exact-match lookup
// key, so any encoding mismatch silently breaks all pairing.
type TokenGenerator interface {
	Generate() (plainToken string, hash string, err error)
	Hash(plainToken string) string
	Verify(plainToken, hash string) bool
}

type tokenGenerator struct{}

func NewTokenGenerator() TokenGenerator {
	return &tokenGenerator{}
}

// Generate returns a 256-bit random token in padding-free base64url (43
// chars, cookie-safe) together with its storage hash. The plain token is
// never persisted.
func (g *tokenGenerator) Generate() (string, string, error) {
	randomBytes := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plainToken := base64.RawURLEncoding.EncodeToString(randomBytes)
	return plainToken, g.Hash(plainToken), nil
}

// Hash is deterministic SHA-256, hex encoded.
func (g *tokenGenerator) Hash(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

func (g *tokenGenerator) Verify(plainToken, hash string) bool {
	computedHash := g.Hash(plainToken)
	return subtle.ConstantTimeCompare([]byte(computedHash), []byte(hash)) == 1
}
