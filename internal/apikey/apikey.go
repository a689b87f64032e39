package apikey

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"eduscale-server-go/pkg/model"
)

// DEFAULT_USAGE_LIMIT caps how many requests a key may authenticate
const DEFAULT_USAGE_LIMIT = 10000

// secretPrefixLen is how many leading characters of the secret are stored in
// clear for candidate lookup ("esk_" plus 8 hex characters).
const secretPrefixLen = 12

var (
	ErrInvalidKey        = errors.New("invalid api key")
	ErrKeyRevoked        = errors.New("api key revoked")
	ErrUsageLimitReached = errors.New("api key usage limit reached")
)

// APIKeyService handles issuing and validating API keys
type APIKeyService struct {
	db *sqlx.DB
}

// NewAPIKeyService creates a new API key service
func NewAPIKeyService(db *sqlx.DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// IssueKey generates a fresh secret, stores its bcrypt hash plus a lookup
// prefix, and returns the plaintext secret exactly once.
func (s *APIKeyService) IssueKey(req model.APIKeyCreateRequest) (*model.APIKeyCreateResponse, error) {
	secret, err := generateSecret()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash api key secret: %w", err)
	}

	limit := req.UsageLimit
	if limit <= 0 || limit > DEFAULT_USAGE_LIMIT {
		limit = DEFAULT_USAGE_LIMIT
	}

	var key model.APIKey
	err = s.db.Get(&key, `
        INSERT INTO api_keys (id, name, key_prefix, key_hash, usage_limit, created_at)
        VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
        RETURNING id, name, key_prefix, key_hash, revoked, usage_count, usage_limit, created_at, last_used_at
    `, req.Name, secret[:secretPrefixLen], string(hash), limit, time.Now())
	if err != nil {
		return nil, err
	}

	return &model.APIKeyCreateResponse{APIKey: key, Secret: secret}, nil
}

// ListKeys returns every issued key, newest first
func (s *APIKeyService) ListKeys() ([]model.APIKey, error) {
	keys := []model.APIKey{}
	err := s.db.Select(&keys, `
        SELECT id, name, key_prefix, key_hash, revoked, usage_count, usage_limit, created_at, last_used_at
        FROM api_keys
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// RevokeKey marks a key revoked. Returns sql.ErrNoRows for an unknown id.
func (s *APIKeyService) RevokeKey(id string) error {
	res, err := s.db.Exec(`UPDATE api_keys SET revoked = true WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ValidateKey checks a presented secret against stored keys. Candidates are
// narrowed by the clear prefix, then confirmed with a bcrypt comparison.
// Successful validation increments the usage counter.
func (s *APIKeyService) ValidateKey(secret string) (*model.APIKey, error) {
	if len(secret) < secretPrefixLen {
		return nil, ErrInvalidKey
	}

	candidates := []model.APIKey{}
	err := s.db.Select(&candidates, `
        SELECT id, name, key_prefix, key_hash, revoked, usage_count, usage_limit, created_at, last_used_at
        FROM api_keys
        WHERE key_prefix = $1
    `, secret[:secretPrefixLen])
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		key := &candidates[i]
		if bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(secret)) != nil {
			continue
		}
		if key.Revoked {
			return nil, ErrKeyRevoked
		}
		if key.UsageCount >= key.UsageLimit {
			return nil, ErrUsageLimitReached
		}

		_, err = s.db.Exec(`
            UPDATE api_keys SET usage_count = usage_count + 1, last_used_at = $2 WHERE id = $1
        `, key.ID, time.Now())
		if err != nil {
			// The key already validated; a lost increment is not worth
			// failing the request over.
			log.Printf("Failed to increment usage for api key %s: %v", key.ID, err)
		}

		return key, nil
	}

	return nil, ErrInvalidKey
}

func generateSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key secret: %w", err)
	}
	return "esk_" + hex.EncodeToString(buf), nil
}
