// Package cryptox implements the password digests stored in the credential
// store.
//
// Two schemes are supported:
//
//	sha256    lowercase hex SHA-256 of the password; deterministic
//	argon2id  salted argon2id in PHC form: $argon2id$v=19$m=..,t=..,p=..$salt$hash
//
// HashPassword uses the scheme configured for new accounts. VerifyPassword
// detects the scheme from the stored value, so one store may hold both.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
)

// Scheme names a password digest algorithm.
type Scheme string

const (
	SchemeSHA256   Scheme = "sha256"
	SchemeArgon2ID Scheme = "argon2id"
)

// argon2id parameters for new hashes.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// Bounds accepted when verifying a stored argon2id hash.
const (
	argon2MaxTime   = 16
	argon2MaxMemory = 1024 * 1024
)

var (
	ErrUnknownScheme       = errors.New("unknown password scheme")
	ErrInvalidHash         = errors.New("invalid hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// ParseScheme validates a configured scheme name.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(s)) {
	case SchemeSHA256:
		return SchemeSHA256, nil
	case SchemeArgon2ID:
		return SchemeArgon2ID, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

// HashPassword returns the digest of password encoded for storage.
func HashPassword(scheme Scheme, password []byte) (string, error) {
	switch scheme {
	case SchemeSHA256:
		return sha256Hex(password), nil
	case SchemeArgon2ID:
		return argon2Hash(password, common.GenerateRandByteArray(argon2SaltLen)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// VerifyPassword reports whether password matches the stored digest.
// The comparison is done on digests in constant time.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	if strings.HasPrefix(encoded, "$argon2id$") {
		return verifyArgon2(password, encoded)
	}

	stored, err := hex.DecodeString(encoded)
	if err != nil || len(stored) != sha256.Size {
		return false, ErrInvalidHash
	}
	candidate := sha256.Sum256(password)
	return subtle.ConstantTimeCompare(stored, candidate[:]) == 1, nil
}

func sha256Hex(password []byte) string {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:])
}

func argon2Hash(password, salt []byte) string {
	key := argon2.IDKey(password, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func verifyArgon2(password []byte, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHash
	}
	if version != argon2.Version {
		return false, ErrIncompatibleVersion
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrInvalidHash
	}
	if time < 1 || time > argon2MaxTime || threads < 1 ||
		memory < 8*uint32(threads) || memory > argon2MaxMemory {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false, ErrInvalidHash
	}

	computed := argon2.IDKey(password, salt, time, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
