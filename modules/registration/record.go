package registration

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/regform/pkg/form"
)

// Record is a stored registration. The plain password never leaves the
// session form; only its bcrypt hash is kept.
type Record struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	PhoneNumber  string    `json:"phone_number"`
	Age          float64   `json:"age"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewRecord builds a Record from validated form values.
func NewRecord(values form.Values[Field], bcryptCost int, now time.Time) (Record, error) {
	for _, f := range Fields() {
		if _, ok := values[f]; !ok {
			return Record{}, fmt.Errorf("%w: missing %s", ErrInvalidRecord, f)
		}
	}

	age := values[FieldAge].Float()
	if math.IsNaN(age) || math.IsInf(age, 0) {
		return Record{}, fmt.Errorf("%w: age is not a number", ErrInvalidRecord)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(values[FieldPassword].String()), bcryptCost)
	if err != nil {
		return Record{}, errors.Join(ErrInvalidRecord, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Record{}, errors.Join(ErrInvalidRecord, err)
	}

	return Record{
		ID:           id,
		FullName:     strings.TrimSpace(values[FieldFullName].String()),
		Email:        strings.TrimSpace(values[FieldEmail].String()),
		PasswordHash: string(hash),
		PhoneNumber:  strings.TrimSpace(values[FieldPhoneNumber].String()),
		Age:          age,
		Country:      values[FieldCountry].String(),
		CreatedAt:    now.UTC(),
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func (r Record) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), passwordKey(password)) == nil
}

// maxBcryptInput is the longest input bcrypt accepts.
const maxBcryptInput = 72

// passwordKey returns the bytes fed to bcrypt. Longer passwords are reduced
// to the base64 of their SHA-256 digest, 44 bytes, so every byte still counts.
func passwordKey(password string) []byte {
	if len(password) <= maxBcryptInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
