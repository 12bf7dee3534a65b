package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurposeAuth tags tokens minted at registration/login. Other purposes
// (e.g. password reset) would get their own tag.
const TokenPurposeAuth = "auth"

type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountToken is one currently-valid bearer token issued to an account.
// An entry exists exactly for tokens that were issued and not yet revoked.
type AccountToken struct {
	Purpose string `json:"purpose"`
	Token   string `json:"token"`
}

// PublicAccount is the only shape of an account that ever crosses the API
// boundary. Password hashes and token lists stay inside.
type PublicAccount struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func (a *Account) Public() PublicAccount {
	return PublicAccount{ID: a.ID, Email: a.Email}
}
