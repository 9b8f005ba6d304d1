package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidKey is returned when the provided API key does not match any active user.
var ErrInvalidKey = errors.New("invalid or revoked API key")

const (
	keyPrefix    = "fp_"
	keyPrefixLen = 8
	keyRandBytes = 32
)

// Service issues and verifies API keys. Keys are stored only as bcrypt
// hashes; the first keyPrefixLen characters are kept in clear for lookup.
type Service struct {
	userRepo   UserRepository
	bcryptCost int
}

// NewService creates an auth Service with the given bcrypt cost.
func NewService(userRepo UserRepository, bcryptCost int) *Service {
	return &Service{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// GenerateKey mints a new API key and returns the raw key, its lookup
// prefix, and the bcrypt hash to store. The raw key is shown to the
// caller exactly once.
func (s *Service) GenerateKey() (rawKey, prefix, hash string, err error) {
	buf := make([]byte, keyRandBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", "", fmt.Errorf("generating random bytes: %w", err)
	}
	rawKey = keyPrefix + base64.RawURLEncoding.EncodeToString(buf)
	prefix = rawKey[:keyPrefixLen]

	hashed, err := bcrypt.GenerateFromPassword([]byte(rawKey), s.bcryptCost)
	if err != nil {
		return "", "", "", fmt.Errorf("hashing key: %w", err)
	}
	return rawKey, prefix, string(hashed), nil
}

// Authenticate resolves a raw API key to an Identity. Candidates are
// narrowed by the clear-text prefix, then bcrypt-compared one by one.
func (s *Service) Authenticate(ctx context.Context, rawKey string) (*Identity, error) {
	if len(rawKey) < keyPrefixLen {
		return nil, ErrInvalidKey
	}

	candidates, err := s.userRepo.FindByPrefix(ctx, rawKey[:keyPrefixLen])
	if err != nil {
		return nil, fmt.Errorf("finding users by prefix: %w", err)
	}

	for _, u := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(u.ApiKeyHash), []byte(rawKey)) != nil {
			continue
		}
		return &Identity{
			UserID:      u.ID,
			UserName:    u.Name,
			Role:        u.Role,
			IsSuperuser: u.IsSuperuser,
		}, nil
	}

	return nil, ErrInvalidKey
}

// BootstrapSuperuser creates the initial superuser when the users table
// is empty and returns its raw key. On a populated table it is a no-op
// and returns "".
func (s *Service) BootstrapSuperuser(ctx context.Context) (string, error) {
	count, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return "", fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return "", nil
	}

	rawKey, prefix, hash, err := s.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("generating superuser key: %w", err)
	}

	su := &User{
		Name:         "superuser",
		IsSuperuser:  true,
		ApiKeyPrefix: prefix,
		ApiKeyHash:   hash,
	}
	if err := s.userRepo.Create(ctx, su); err != nil {
		return "", fmt.Errorf("creating superuser: %w", err)
	}

	slog.Info("superuser API key created", "key", rawKey)
	return rawKey, nil
}
