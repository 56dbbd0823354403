package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// werkzeug's default when the iteration count is omitted from the method.
const legacyPbkdf2Iterations = 260000

// bcrypt only reads the first 72 bytes and rejects longer input.
const bcryptMaxLen = 72

// bcryptInput digests passwords bcrypt cannot take whole.
func bcryptInput(pwd string) []byte {
	if len(pwd) <= bcryptMaxLen {
		return []byte(pwd)
	}
	sum := sha256.Sum256([]byte(pwd))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// GetPwd hashes a password of any length.
func GetPwd(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(pwd), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPwd verifies a password against a stored hash. Besides bcrypt it
// understands werkzeug's "pbkdf2:<alg>[:<iter>]$<salt>$<hex>" format so rows
// imported from the previous user table still log in.
func CheckPwd(pwd string, stored string) bool {
	if strings.HasPrefix(stored, "pbkdf2:") {
		return checkLegacyPbkdf2(pwd, stored)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(pwd)) == nil
}

func checkLegacyPbkdf2(pwd, stored string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	args := strings.Split(strings.TrimPrefix(method, "pbkdf2:"), ":")
	var newHash func() hash.Hash
	switch args[0] {
	case "sha256":
		newHash = sha256.New
	case "sha512":
		newHash = sha512.New
	default:
		return false
	}
	iterations := legacyPbkdf2Iterations
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return false
		}
		iterations = n
	}

	wantBytes, err := hex.DecodeString(want)
	if err != nil || len(wantBytes) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(pwd), []byte(salt), iterations, len(wantBytes), newHash)
	return hmac.Equal(got, wantBytes)
}
