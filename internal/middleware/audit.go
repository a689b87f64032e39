package middleware

import (
	"database/sql"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// RequestAudit records each completed request in the api_logs table. A failed
// insert is logged and swallowed; auditing never fails the request itself.
func RequestAudit(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		keyID := sql.NullString{}
		if id := c.GetString("api_key_id"); id != "" {
			keyID = sql.NullString{String: id, Valid: true}
		}

		_, err := db.Exec(`
            INSERT INTO api_logs (id, method, path, status, duration_ms, api_key_id, created_at)
            VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
        `, c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Milliseconds(), keyID, time.Now())
		if err != nil {
			log.Printf("Failed to record request audit log: %v", err)
		}
	}
}
