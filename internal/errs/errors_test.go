package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	plain := New(ErrKindNotFound, "template Controller not found")
	assert.Equal(t, "[not_found] template Controller not found", plain.Error())

	wrapped := Wrap(ErrKindConnectionFailed, "ping failed", errors.New("dial tcp: refused"))
	assert.Equal(t, "[connection_failed] ping failed: dial tcp: refused", wrapped.Error())
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", New(ErrKindNotFound, "x"), IsNotFound},
		{"invalid input", InvalidArgument("table is nil"), IsInvalidInput},
		{"unmapped type", New(ErrKindUnmappedType, "GEOMETRY"), IsUnmappedType},
		{"timeout", Wrap(ErrKindTimeout, "x", errors.New("deadline")), IsTimeout},
		{"connection", New(ErrKindConnectionFailed, "x"), IsConnectionFailed},
		{"permission", New(ErrKindPermissionDenied, "x"), IsPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))

			// Context added by callers must not hide the kind.
			assert.True(t, tt.check(fmt.Errorf("render user: %w", tt.err)))
		})
	}
}

func TestKindOf_PlainError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, ErrKindUnknown, KindOf(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "unknown", KindOf(err).String())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrKindNotFound, "missing", cause)
	assert.ErrorIs(t, err, cause)
}

func TestErrKind_Names(t *testing.T) {
	tests := []struct {
		kind ErrKind
		want string
	}{
		{ErrKindNotFound, "not_found"},
		{ErrKindUnmappedType, "unmapped_type"},
		{ErrKindPermissionDenied, "permission_denied"},
		{ErrKind(-1), "unknown"},
		{ErrKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
			text, err := tt.kind.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(text))
		})
	}
}
