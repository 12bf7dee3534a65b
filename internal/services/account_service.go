package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/mkowal/todoapi/internal/auth"
	"github.com/mkowal/todoapi/internal/models"
	"github.com/mkowal/todoapi/internal/repositories"
)

const MinPasswordLength = 6

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email address", ErrValidation)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// AccountService owns account records and their token lifecycle: plaintext
// passwords go in, only hashes come out, and a token is honored exactly while
// it sits in the account's token set.
type AccountService struct {
	accountRepo repositories.AccountRepository
	tokenRepo   repositories.TokenRepository
	codec       *auth.TokenCodec
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	tokenRepo repositories.TokenRepository,
	codec *auth.TokenCodec,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		codec:       codec,
	}
}

func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil {
		return ErrInvalidEmail
	}
	// Reject display-name forms like "Bob <bob@example.com>".
	if parsed.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

// Register validates the input, hashes the password, and persists a new
// account. The plaintext password is never stored or logged.
func (s *AccountService) Register(ctx context.Context, email, password string) (*models.Account, error) {
	email = strings.TrimSpace(email)

	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: hashedPassword,
	}

	err = s.accountRepo.Create(ctx, account)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// FindByCredentials resolves an email/password pair to an account. Unknown
// email and wrong password both come back as ErrInvalidCredentials, so a
// caller cannot probe which addresses are registered.
func (s *AccountService) FindByCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.accountRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// FindByToken resolves a bearer token to an account. The signature is checked
// first, so a forged token never reaches the database; a well-signed token is
// then honored only while it is still present in the account's token set.
func (s *AccountService) FindByToken(ctx context.Context, tokenString string) (*models.Account, error) {
	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != models.TokenPurposeAuth {
		return nil, ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	valid, err := s.tokenRepo.Contains(ctx, account.ID, models.AccountToken{
		Purpose: claims.Purpose,
		Token:   tokenString,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if !valid {
		// Structurally sound but revoked.
		return nil, ErrInvalidToken
	}

	return account, nil
}

// GenerateToken mints a fresh auth token and records it against the account.
// Each call produces an independent token, so multiple devices can hold
// their own sessions.
func (s *AccountService) GenerateToken(ctx context.Context, account *models.Account) (string, error) {
	token, err := s.codec.Sign(account.ID, models.TokenPurposeAuth)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	err = s.tokenRepo.Add(ctx, account.ID, models.AccountToken{
		Purpose: models.TokenPurposeAuth,
		Token:   token,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// RevokeToken removes the given token string from the account. Revoking a
// token that is already absent succeeds.
func (s *AccountService) RevokeToken(ctx context.Context, account *models.Account, tokenString string) error {
	if err := s.tokenRepo.Remove(ctx, account.ID, tokenString); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAllTokens logs the account out everywhere.
func (s *AccountService) RevokeAllTokens(ctx context.Context, account *models.Account) error {
	if err := s.tokenRepo.RemoveAll(ctx, account.ID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

// ListTokens returns the account's currently-valid tokens.
func (s *AccountService) ListTokens(ctx context.Context, account *models.Account) ([]models.AccountToken, error) {
	tokens, err := s.tokenRepo.List(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// ChangePassword re-hashes and stores a new password. Hashing happens here
// and nowhere else, so an already-stored hash is never hashed twice.
func (s *AccountService) ChangePassword(ctx context.Context, account *models.Account, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.UpdatePasswordHash(ctx, account.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	account.PasswordHash = hashedPassword
	return nil
}
