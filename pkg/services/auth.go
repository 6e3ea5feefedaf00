package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
	"gopkg.in/yaml.v3"

	"xmlrpc-cms/pkg/models"
)

// Argon2id parameters for user password hashes.
const (
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Authenticator verifies credentials against per-user YAML records stored
// in the users directory.
type Authenticator struct {
	usersDir string
}

func NewAuthenticator(usersDir string) *Authenticator {
	return &Authenticator{usersDir: usersDir}
}

// Verify loads the user record and checks the password. Both a missing
// account and a wrong password come back as ErrAuth.
func (a *Authenticator) Verify(username, password string) (*models.User, error) {
	safe := filepath.Base(username)
	if safe != username || safe == "." || safe == ".." || safe == "" {
		return nil, ErrAuth
	}

	raw, err := os.ReadFile(filepath.Join(a.usersDir, safe+".yaml"))
	if err != nil {
		return nil, ErrAuth
	}

	var user models.User
	if err := yaml.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("bad user record for %s: %w", safe, err)
	}
	user.Username = safe

	ok, err := verifyArgon2(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrAuth
	}
	return &user, nil
}

// HashPassword creates an argon2id hash in the standard encoded form,
// suitable for pasting into a user record.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

func verifyArgon2(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, fmt.Errorf("invalid hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parsing version: %w", err)
	}

	var memory, timeCost uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return false, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decoding hash: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, timeCost, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(hash, expected) == 1, nil
}
