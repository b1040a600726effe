package clonecoco

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dszilagyiques/CloneCoCo/ident"
)

// TestErrorError verifies the Error() method formatting.
func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "basic error",
			err: &Error{
				Op:   "Transformer.Transform",
				Kind: KindMalformedInput,
				Err:  ErrMalformedInput,
			},
			want: "clonecoco: Transformer.Transform (malformed_input): malformed source document",
		},
		{
			name: "error with context",
			err: &Error{
				Op:   "Transformer.filter",
				Kind: KindIdentifierSpace,
				Err:  ident.ErrSpaceExhausted,
				Context: map[string]any{
					"module_id": 18306,
				},
			},
			want: "clonecoco: Transformer.filter (identifier_space): identifier space exhausted [context:",
		},
		{
			name: "error without underlying error",
			err: &Error{
				Op:   "Client.Login",
				Kind: KindNetwork,
			},
			want: "clonecoco: Client.Login: network",
		},
		{
			name: "error with wrapped error",
			err: &Error{
				Op:   "NewTransformer",
				Kind: KindConfiguration,
				Err:  fmt.Errorf("failed to build counter: %w", errors.New("boom")),
			},
			want: "clonecoco: NewTransformer (configuration): failed to build counter: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

// TestErrorUnwrap verifies errors.Is traversal through wrapped errors.
func TestErrorUnwrap(t *testing.T) {
	err := NewIdentifierSpaceError("Transformer.filter",
		fmt.Errorf("no free identifier: %w", ident.ErrSpaceExhausted))

	if !errors.Is(err, ident.ErrSpaceExhausted) {
		t.Error("errors.Is() should match the wrapped sentinel")
	}
	if errors.Is(err, ErrMalformedInput) {
		t.Error("errors.Is() matched an unrelated sentinel")
	}
}

// TestErrorIs verifies kind-based matching between Error values.
func TestErrorIs(t *testing.T) {
	err := NewMalformedInputError("Transformer.Transform", ErrMalformedInput)

	tests := []struct {
		name   string
		target error
		want   bool
	}{
		{
			name:   "matching kind, any op",
			target: &Error{Kind: KindMalformedInput},
			want:   true,
		},
		{
			name:   "matching kind and op",
			target: &Error{Op: "Transformer.Transform", Kind: KindMalformedInput},
			want:   true,
		},
		{
			name:   "matching kind, wrong op",
			target: &Error{Op: "Client.Login", Kind: KindMalformedInput},
			want:   false,
		},
		{
			name:   "different kind",
			target: &Error{Kind: KindNetwork},
			want:   false,
		},
		{
			name:   "underlying sentinel",
			target: ErrMalformedInput,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestErrorWithContext verifies context copying semantics.
func TestErrorWithContext(t *testing.T) {
	base := NewNetworkError("Client.CreateCollectionConfiguration", errors.New("status 500"))

	withCtx := base.WithContext(map[string]any{"status": 500})
	if base.Context != nil {
		t.Error("WithContext() must not mutate the original error")
	}
	if withCtx.Context["status"] != 500 {
		t.Errorf("Context[status] = %v, want 500", withCtx.Context["status"])
	}

	more := withCtx.WithContext(map[string]any{"attempt": 2})
	if _, ok := withCtx.Context["attempt"]; ok {
		t.Error("WithContext() must copy before adding keys")
	}
	if more.Context["status"] != 500 || more.Context["attempt"] != 2 {
		t.Errorf("Context = %+v, want both keys", more.Context)
	}
}

// TestErrorConstructors verifies each constructor sets the right kind.
func TestErrorConstructors(t *testing.T) {
	underlying := errors.New("cause")

	tests := []struct {
		name string
		err  *Error
		kind string
	}{
		{"malformed input", NewMalformedInputError("op", underlying), KindMalformedInput},
		{"identifier space", NewIdentifierSpaceError("op", underlying), KindIdentifierSpace},
		{"configuration", NewConfigurationError("op", underlying), KindConfiguration},
		{"network", NewNetworkError("op", underlying), KindNetwork},
		{"internal", NewInternalError("op", underlying), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if tt.err.Op != "op" {
				t.Errorf("Op = %q, want %q", tt.err.Op, "op")
			}
			if !errors.Is(tt.err, underlying) {
				t.Error("constructor must wrap the underlying error")
			}
		})
	}
}
