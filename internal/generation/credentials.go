package generation

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/cmlowerence/Learn-Better/internal/redact"
)

// Credential is an API key for the model provider. Its String form is
// masked so a Credential can be passed to a logger safely.
type Credential string

func (c Credential) String() string {
	return redact.Secret(string(c))
}

// LogValue keeps the raw key out of structured logs.
func (c Credential) LogValue() slog.Value {
	return slog.StringValue(c.String())
}

// Secret returns the raw key for use in an outbound request.
func (c Credential) Secret() string {
	return string(c)
}

// CredentialPool is the read-only set of credentials available to every call.
type CredentialPool struct {
	creds []Credential
}

// NewCredentialPool builds a pool from raw keys. Blank keys are rejected and
// duplicates collapse to one entry.
func NewCredentialPool(keys []string) (*CredentialPool, error) {
	seen := make(map[string]struct{}, len(keys))
	creds := make([]Credential, 0, len(keys))
	for i, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("%w: credential %d is empty", ErrInvalidConfig, i)
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		creds = append(creds, Credential(k))
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("%w: credential pool cannot be empty", ErrInvalidConfig)
	}
	return &CredentialPool{creds: creds}, nil
}

// Len returns the number of distinct credentials.
func (p *CredentialPool) Len() int {
	return len(p.creds)
}

// ShuffleFunc permutes n elements using swap, with the contract of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Shuffled returns a fresh copy of the pool ordered by shuffle. The pool
// itself is never reordered, so concurrent calls each see their own order.
func (p *CredentialPool) Shuffled(shuffle ShuffleFunc) []Credential {
	out := make([]Credential, len(p.creds))
	copy(out, p.creds)
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
