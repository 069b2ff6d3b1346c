package utility

import (
	"encoding/hex"
	"errors"
	"log/slog"
	"testing"

	"gotest.tools/v3/assert"
)

type failingReader struct{}

func (failingReader) Read(_ []byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestGetUniqid(t *testing.T) {
	t.Parallel()

	t.Run("defaults to sha256 hex", func(t *testing.T) {
		id, err := GetUniqid()
		assert.NilError(t, err)
		assert.Equal(t, len(id), 64)

		_, err = hex.DecodeString(id)
		assert.NilError(t, err)
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for range 50 {
			id, err := GetUniqid(WithEntropyBytes(16))
			assert.NilError(t, err)
			assert.Assert(t, !seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})

	t.Run("algorithm", func(t *testing.T) {
		id, err := GetUniqid(WithHashAlgorithm(HashSHA512), WithEntropyBytes(32))
		assert.NilError(t, err)
		assert.Equal(t, len(id), 128)
	})

	t.Run("raw output", func(t *testing.T) {
		id, err := GetUniqid(WithRawOutput(true), WithEntropyBytes(32))
		assert.NilError(t, err)
		assert.Equal(t, len(id), 32)
	})

	t.Run("prefix does not appear in the output", func(t *testing.T) {
		id, err := GetUniqid(WithPrefix("order_"), WithEntropyBytes(32))
		assert.NilError(t, err)
		assert.Equal(t, len(id), 64)
		assert.Assert(t, id[:6] != "order_")
	})

	t.Run("request context and zero entropy", func(t *testing.T) {
		rc := browser("Mozilla/5.0", "1", "en")
		rc.Cookies = map[string]string{"session": "abc"}

		id, err := GetUniqid(WithRequestContext(rc), WithEntropyBytes(0))
		assert.NilError(t, err)
		assert.Equal(t, len(id), 64)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := GetUniqid(WithHashAlgorithm("nope"))
		assert.ErrorIs(t, err, ErrUnknownHashAlgorithm)
	})
}

func TestGetUniqidWithoutSecureEntropy(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}

	id, err := GetUniqid(
		WithEntropySource(failingReader{}),
		WithEntropyBytes(64),
		WithLogger(logger),
	)

	assert.NilError(t, err)
	assert.Equal(t, len(id), 64)
	assert.DeepEqual(t, logger.entries, []string{"cryptographically strong entropy unavailable"})
	assert.Equal(t, logger.level, slog.LevelWarn)
}

func TestGetUniqidNilLogger(t *testing.T) {
	t.Parallel()

	id, err := GetUniqid(
		WithLogger(nil),
		WithEntropySource(failingReader{}),
		WithEntropyBytes(8),
	)

	assert.NilError(t, err)
	assert.Equal(t, len(id), 64)
}

func TestNewRequestSnapshot(t *testing.T) {
	t.Parallel()

	empty := newRequestSnapshot(nil)
	assert.DeepEqual(t, empty, requestSnapshot{
		Cookies: map[string]string{},
		Query:   map[string][]string{},
		Files:   map[string][]string{},
		Env:     map[string]string{},
		Server:  map[string]string{},
	})

	rc := &RequestContext{Cookies: map[string]string{"a": "b"}}
	s := newRequestSnapshot(rc)
	assert.DeepEqual(t, s.Cookies, map[string]string{"a": "b"})
	assert.DeepEqual(t, s.Env, map[string]string{})
}
