package errors

import (
	"fmt"
	"testing"
)

func TestRegisterDuplicateCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate code registration")
		}
	}()
	Register(2, "conflicting")
}

func TestIsMatchesWrappedErrors(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"wrapped once": {
			kind: ErrNotFound,
			err:  Wrap(ErrNotFound, "no such wallet"),
			want: true,
		},
		"wrapped twice": {
			kind: ErrNotFound,
			err:  Wrap(Wrap(ErrNotFound, "inner"), "outer"),
			want: true,
		},
		"different kind": {
			kind: ErrNotFound,
			err:  Wrap(ErrDuplicate, "already registered"),
			want: false,
		},
		"nil error": {
			kind: ErrNotFound,
			err:  nil,
			want: false,
		},
		"stdlib error": {
			kind: ErrNotFound,
			err:  fmt.Errorf("plain"),
			want: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if err := Wrap(nil, "whatever"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %v", err)
	}
}

func TestWrappedErrorMessage(t *testing.T) {
	err := Wrap(ErrAmount, "deposit below minimum")
	const want = "deposit below minimum: invalid amount"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWrapfFormatsDescription(t *testing.T) {
	err := Wrapf(ErrState, "deposit status is %d", 3)
	const want = "deposit status is 3: invalid state"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWrapPreservesStackTrace(t *testing.T) {
	err := Wrap(Wrap(ErrHuman, "inner"), "outer")
	st, ok := err.(stackTracer)
	if !ok {
		t.Fatal("wrapped error must expose a stack trace")
	}
	if len(st.StackTrace()) == 0 {
		t.Fatal("stack trace must not be empty")
	}
}
