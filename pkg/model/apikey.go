package model

import "time"

// APIKey represents an issued API key. The bcrypt hash is never serialized.
type APIKey struct {
	ID         string     `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	KeyPrefix  string     `db:"key_prefix" json:"key_prefix"`
	KeyHash    string     `db:"key_hash" json:"-"`
	Revoked    bool       `db:"revoked" json:"revoked"`
	UsageCount int        `db:"usage_count" json:"usage_count"`
	UsageLimit int        `db:"usage_limit" json:"usage_limit"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	LastUsedAt *time.Time `db:"last_used_at" json:"last_used_at,omitempty"`
}

// APIKeyCreateRequest represents the request to issue a new API key
type APIKeyCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	UsageLimit int    `json:"usage_limit"` // If not provided, default will be used
}

// APIKeyCreateResponse returns the key metadata together with the plaintext
// secret. The secret is shown exactly once; only its hash is stored.
type APIKeyCreateResponse struct {
	APIKey
	Secret string `json:"secret"`
}
