package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Version     = argon2.Version
	argon2Memory      = 64 * 1024 // KiB
	argon2Iterations  = 1
	argon2Parallelism = 4
	argon2SaltLength  = 16
	argon2KeyLength   = 32
)

// Hasher hashes passwords with argon2id. A server-side pepper is appended to
// the password before hashing, so leaked digests cannot be attacked without
// the server secret.
type Hasher struct {
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// Hash returns a PHC-encoded argon2id digest:
// $argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt_b64>$<hash_b64>
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password+h.pepper), salt, argon2Iterations, argon2Memory, argon2Parallelism, argon2KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version, argon2Memory, argon2Iterations, argon2Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify reports whether password matches the encoded digest. A mismatch is
// an ordinary false, never an error; only a malformed digest errors.
func (h *Hasher) Verify(password, encoded string) (bool, error) {
	memory, iterations, parallelism, salt, expected, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	key := argon2.IDKey([]byte(password+h.pepper), salt, iterations, memory, parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

func decodeHash(encoded string) (memory, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id hash")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported argon2 version")
	}

	var par uint64
	for _, kv := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id params")
		}
		n, perr := strconv.ParseUint(v, 10, 32)
		if perr != nil {
			return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id params")
		}
		switch k {
		case "m":
			memory = uint32(n)
		case "t":
			iterations = uint32(n)
		case "p":
			par = n
		}
	}
	if memory == 0 || iterations == 0 || par == 0 || par > 255 {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id params")
	}
	parallelism = uint8(par)

	b64 := base64.RawStdEncoding
	if salt, err = b64.DecodeString(parts[4]); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id salt")
	}
	if key, err = b64.DecodeString(parts[5]); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed argon2id key")
	}
	return memory, iterations, parallelism, salt, key, nil
}
