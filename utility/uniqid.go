package utility

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	mrand "math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

// DefaultEntropyBytes is the default amount of random characters and
// secure random bytes mixed into a GetUniqid seed.
const DefaultEntropyBytes = 10000

// uniqidConfig holds the configuration for GetUniqid.
type uniqidConfig struct {
	alg           HashAlgorithm
	prefix        string
	entropyBytes  int
	rawOutput     bool
	rc            *RequestContext
	entropySource io.Reader
	logger        Logger
}

// UniqidOption configures GetUniqid.
type UniqidOption func(*uniqidConfig)

// WithHashAlgorithm sets the digest algorithm. Default is HashSHA256.
func WithHashAlgorithm(alg HashAlgorithm) UniqidOption {
	return func(c *uniqidConfig) {
		c.alg = alg
	}
}

// WithPrefix sets the prefix of the time-based token mixed into the seed.
// The returned identifier itself is not prefixed.
func WithPrefix(prefix string) UniqidOption {
	return func(c *uniqidConfig) {
		c.prefix = prefix
	}
}

// WithEntropyBytes sets how many random characters and secure random
// bytes are mixed into the seed. Negative values are treated as 0.
// Default is DefaultEntropyBytes.
func WithEntropyBytes(n int) UniqidOption {
	return func(c *uniqidConfig) {
		c.entropyBytes = max(n, 0)
	}
}

// WithRawOutput makes GetUniqid return the raw digest bytes instead of
// their hex encoding.
func WithRawOutput(raw bool) UniqidOption {
	return func(c *uniqidConfig) {
		c.rawOutput = raw
	}
}

// WithRequestContext mixes the cookies, query, files, env and server maps
// of rc into the seed. Without it empty maps are used. rc is also stored in
// the context passed to the logger.
func WithRequestContext(rc *RequestContext) UniqidOption {
	return func(c *uniqidConfig) {
		c.rc = rc
	}
}

// WithEntropySource replaces crypto/rand.Reader as the source of secure
// random bytes.
func WithEntropySource(r io.Reader) UniqidOption {
	return func(c *uniqidConfig) {
		c.entropySource = r
	}
}

// WithLogger sets the Logger that receives the warning emitted when secure
// random bytes are unavailable. Default is slog.Default(); a nil l keeps it.
func WithLogger(l Logger) UniqidOption {
	return func(c *uniqidConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// requestSnapshot is the part of a RequestContext mixed into a uniqid seed.
type requestSnapshot struct {
	Cookies map[string]string   `json:"cookies"`
	Query   map[string][]string `json:"query"`
	Files   map[string][]string `json:"files"`
	Env     map[string]string   `json:"env"`
	Server  map[string]string   `json:"server"`
}

// GetUniqid returns a hard to guess unique identifier: the digest of a
// seed made of a random integer, a snapshot of the request context, a
// time-based token, a random ASCII string and, when available, bytes from
// a cryptographically secure source.
//
// If the secure source fails, a warning is logged and the identifier is
// built without it. An error is returned only for an unknown algorithm or
// a request context that cannot be serialized.
//
// Example:
//
//	id, err := GetUniqid(WithHashAlgorithm(HashSHA512), WithEntropyBytes(64))
func GetUniqid(opts ...UniqidOption) (string, error) {
	c := &uniqidConfig{
		alg:           HashSHA256,
		entropyBytes:  DefaultEntropyBytes,
		entropySource: rand.Reader,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	h, err := NewHash(c.alg)
	if err != nil {
		return "", err
	}

	snapshot, err := json.Marshal(newRequestSnapshot(c.rc))
	if err != nil {
		return "", fmt.Errorf("failed to serialize request context: %w", err)
	}

	_, _ = io.WriteString(h, strconv.FormatInt(mrand.Int64(), 10))
	_, _ = h.Write(snapshot)
	_, _ = io.WriteString(h, c.prefix+timeToken())
	_, _ = io.WriteString(h, ASCIIRand(c.entropyBytes, ASCIIAll))

	if c.entropyBytes > 0 {
		secure := make([]byte, c.entropyBytes)
		if _, err := io.ReadFull(c.entropySource, secure); err != nil {
			ctx := context.Background()
			if c.rc != nil {
				ctx = ContextWithRequest(ctx, c.rc)
			}
			c.logger.LogAttrs(ctx, slog.LevelWarn,
				"cryptographically strong entropy unavailable",
				slog.String("error", err.Error()))
		} else {
			_, _ = h.Write(secure)
		}
	}

	sum := h.Sum(nil)
	if c.rawOutput {
		return string(sum), nil
	}

	return hex.EncodeToString(sum), nil
}

// timeToken returns a time-based UUID, or a random one when the clock
// sequence cannot be initialised.
func timeToken() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func newRequestSnapshot(rc *RequestContext) requestSnapshot {
	s := requestSnapshot{
		Cookies: map[string]string{},
		Query:   map[string][]string{},
		Files:   map[string][]string{},
		Env:     map[string]string{},
		Server:  map[string]string{},
	}

	if rc == nil {
		return s
	}

	if rc.Cookies != nil {
		s.Cookies = rc.Cookies
	}
	if rc.Query != nil {
		s.Query = rc.Query
	}
	if rc.Files != nil {
		s.Files = rc.Files
	}
	if rc.Env != nil {
		s.Env = rc.Env
	}
	if rc.Server != nil {
		s.Server = rc.Server
	}

	return s
}
