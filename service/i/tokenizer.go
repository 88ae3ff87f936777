package i

import (
	"time"
)

// Tokenizer signs and verifies share tokens.
type Tokenizer interface {
	// Generate creates a token carrying claims that expires after expTime.
	Generate(claims map[string]any, expTime time.Duration) (string, error)

	// Decode validates a token and returns its claims.
	Decode(token string) (map[string]any, error)
}
