package utility

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"
)

func constName() string {
	return "C_" + strings.ReplaceAll(uuid.NewString(), "-", "_")
}

func TestIfUndefined(t *testing.T) {
	t.Parallel()

	const1 := constName()
	const2 := constName()
	planB := "bar"

	assert.Assert(t, Define(const1, "foo"))

	assert.Equal(t, IfUndefined(const1, planB), "foo")
	assert.Equal(t, IfUndefined(const2, planB), planB)
}

func TestDefineOnce(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	assert.Assert(t, !r.Defined("LIMIT"))
	assert.Assert(t, r.Define("LIMIT", 10))
	assert.Assert(t, !r.Define("LIMIT", 20))
	assert.Assert(t, r.Defined("LIMIT"))

	v, ok := r.Constant("LIMIT")
	assert.Assert(t, ok)
	assert.Equal(t, v, 10)
}

func TestIfUndefinedIn(t *testing.T) {
	t.Parallel()

	type label string

	r := NewRegistry()
	r.Define("LIMIT", 10)
	r.Define("NAME", "shop")

	assert.Equal(t, IfUndefinedIn(r, "LIMIT", 5), 10)
	assert.Equal(t, IfUndefinedIn[any](r, "LIMIT", "x"), any(10))
	assert.Equal(t, IfUndefinedIn(r, "NAME", label("app")), label("shop"))

	// wrong type falls back
	assert.Equal(t, IfUndefinedIn(r, "LIMIT", "five"), "five")
	assert.Equal(t, IfUndefinedIn(r, "MISSING", 5), 5)
}

func TestIfUndefinedInNilConstant(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Assert(t, r.Define("NULLCONST", nil))

	assert.Equal(t, IfUndefinedIn[any](r, "NULLCONST", "fallback"), nil)
	assert.Equal(t, IfUndefinedIn[error](r, "NULLCONST", errors.New("fallback")), nil)

	// nil is not a string
	assert.Equal(t, IfUndefinedIn(r, "NULLCONST", "fallback"), "fallback")
	assert.Equal(t, IfUndefinedIn(r, "NULLCONST", 7), 7)
}

func TestIfUndefinedEnvironment(t *testing.T) {
	name := constName()
	t.Setenv(name, "from-env")

	r := NewRegistry()

	assert.Equal(t, IfUndefinedIn(r, name, "fallback"), "from-env")
	assert.Equal(t, IfUndefinedIn(r, name, 3), 3)

	r.Define(name, "from-registry")
	assert.Equal(t, IfUndefinedIn(r, name, "fallback"), "from-registry")
}

func TestDefineFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	type output struct {
		consts      map[string]any
		expectedErr string
	}

	tests := []struct {
		name    string
		content string
		output  output
	}{
		{
			name:    "yaml mapping",
			content: "APP_NAME: shop\nLIMIT: 10\nDEBUG: true\n",
			output: output{
				consts: map[string]any{"APP_NAME": "shop", "LIMIT": 10, "DEBUG": true},
			},
		},
		{
			name:    "json object",
			content: `{"APP_NAME": "shop", "RATIO": 0.5}`,
			output: output{
				consts: map[string]any{"APP_NAME": "shop", "RATIO": 0.5},
			},
		},
		{
			name:    "empty file",
			content: "\n",
			output: output{
				consts: map[string]any{},
			},
		},
		{
			name:    "not a mapping",
			content: "- a\n- b\n",
			output: output{
				expectedErr: "failed to parse constants file",
			},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "consts"+string(rune('a'+i))+".yaml")
			assert.NilError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			r := NewRegistry()
			err := r.DefineFromFile(path)
			if tt.output.expectedErr != "" {
				assert.ErrorContains(t, err, tt.output.expectedErr)
				return
			}

			assert.NilError(t, err)
			for name, expected := range tt.output.consts {
				v, ok := r.Constant(name)
				assert.Assert(t, ok, "constant %s should be defined", name)
				assert.Equal(t, v, expected)
			}
		})
	}
}

func TestDefineFromFileMissing(t *testing.T) {
	t.Parallel()

	err := NewRegistry().DefineFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read constants file")
}
