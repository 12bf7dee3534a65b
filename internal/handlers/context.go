package handlers

import (
	"context"

	"github.com/mkowal/todoapi/internal/models"
)

type ctxKey int

const (
	accountKey ctxKey = iota
	tokenKey
)

func withAccount(ctx context.Context, account *models.Account, token string) context.Context {
	ctx = context.WithValue(ctx, accountKey, account)
	return context.WithValue(ctx, tokenKey, token)
}

// AccountFrom returns the authenticated account attached by Authenticate.
func AccountFrom(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(accountKey).(*models.Account)
	return account, ok
}

// TokenFrom returns the raw token the request authenticated with. Logout
// needs it for exact-match revocation.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
