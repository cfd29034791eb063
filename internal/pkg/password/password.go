// Package password wraps bcrypt hashing and verification for user credentials.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used for new hashes.
const DefaultCost = 12

// DummyHash is a syntactically valid bcrypt digest (of a throwaway string, at
// DefaultCost) that matches no real credential. Comparing against it keeps
// login timing uniform when the username does not exist.
const DummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OQTU8/AhCkrrvzj.Tt8LJVhP3u1kXNVX"

// Hash produces a salted bcrypt digest of password. The salt is randomized per
// call, so hashing the same password twice yields different outputs.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether password matches hash. Comparison is constant-time
// inside bcrypt; a malformed hash simply yields false.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
