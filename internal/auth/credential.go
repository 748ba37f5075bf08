package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for every credential this system writes.
const HashCost = 10

// CredentialKind discriminates the two stored password encodings.
type CredentialKind int

const (
	// CredentialHashed is a salted bcrypt hash, the only encoding this system writes.
	CredentialHashed CredentialKind = iota
	// CredentialLegacy is raw plaintext imported from the pre-migration system.
	// It is strictly a read path: successful login upgrades it to CredentialHashed.
	CredentialLegacy
)

// Credential is the tagged representation of a stored password. The variant is
// decided once, when the row is loaded, so business logic never inspects the
// raw string. The stored value stays unexported and is excluded from logging.
type Credential struct {
	kind  CredentialKind
	value string
}

// CredentialFromStored classifies a raw column value by its bcrypt marker.
func CredentialFromStored(stored string) Credential {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(stored, prefix) {
			return Credential{kind: CredentialHashed, value: stored}
		}
	}
	return Credential{kind: CredentialLegacy, value: stored}
}

// NewHashedCredential wraps a freshly computed bcrypt hash.
func NewHashedCredential(hash string) Credential {
	return Credential{kind: CredentialHashed, value: hash}
}

// HashPassword computes the bcrypt encoding used for new and migrated credentials.
func HashPassword(password string) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return Credential{}, err
	}
	return NewHashedCredential(string(hash)), nil
}

// Kind reports the credential encoding.
func (c Credential) Kind() CredentialKind {
	return c.kind
}

// Matches verifies a candidate password. Hashed credentials use bcrypt's
// constant-time comparison; legacy credentials compare the plaintext directly.
func (c Credential) Matches(password string) bool {
	if c.kind == CredentialHashed {
		return bcrypt.CompareHashAndPassword([]byte(c.value), []byte(password)) == nil
	}
	return c.value == password
}

// Stored returns the raw column value for persistence.
func (c Credential) Stored() string {
	return c.value
}

// String keeps credential material out of logs and %v formatting.
func (c Credential) String() string {
	if c.kind == CredentialLegacy {
		return "credential(legacy,redacted)"
	}
	return "credential(hashed,redacted)"
}
