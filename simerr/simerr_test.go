package simerr

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindOutOfRange:         "OutOfRangeError",
		KindNotFound:           "NotFoundError",
		KindNumerical:          "NumericalError",
		KindInvariantViolation: "InvariantViolation",
		Kind(99):               "UnknownError",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestConstructorsSetKind(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"OutOfRange", OutOfRange("msg", nil), KindOutOfRange},
		{"NotFound", NotFound("msg", nil), KindNotFound},
		{"Numerical", Numerical("msg", nil), KindNumerical},
		{"InvariantViolation", InvariantViolation("msg", nil), KindInvariantViolation},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.err.Kind != c.kind {
				t.Errorf("Kind = %v, want %v", c.err.Kind, c.kind)
			}
			if !Is(c.err, c.kind) {
				t.Errorf("Is(err, %v) = false, want true", c.kind)
			}
		})
	}
}

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := NotFound("lookup failed", cause)

	if err.Cause() == nil {
		t.Fatal("Cause() = nil, want wrapped cause")
	}
	if errors.Unwrap(err) == nil {
		t.Fatal("errors.Unwrap(err) = nil, want wrapped cause")
	}
	if got := err.Error(); got == "" {
		t.Error("Error() returned empty string")
	}
}

func TestErrorWithoutCause(t *testing.T) {
	err := OutOfRange("bad range", nil)
	if err.Cause() != nil {
		t.Errorf("Cause() = %v, want nil", err.Cause())
	}
	if err.Error() == "" {
		t.Error("Error() returned empty string")
	}
}

func TestIsDistinguishesKinds(t *testing.T) {
	err := Numerical("did not converge", nil)
	if Is(err, KindOutOfRange) {
		t.Error("Is(err, KindOutOfRange) = true for a NumericalError")
	}
	if !Is(err, KindNumerical) {
		t.Error("Is(err, KindNumerical) = false for a NumericalError")
	}
}

func TestIsNilError(t *testing.T) {
	if Is(nil, KindNotFound) {
		t.Error("Is(nil, ...) = true, want false")
	}
}

func TestIsWalksCauseChain(t *testing.T) {
	inner := NotFound("inner", nil)
	outer := pkgerrors.Wrap(inner, "outer")
	if !Is(outer, KindNotFound) {
		t.Error("Is(outer, KindNotFound) = false, want true")
	}
}

func TestErrorIsMethodMatchesSameKindOnly(t *testing.T) {
	a := NotFound("a", nil)
	b := NotFound("b", nil)
	c := OutOfRange("c", nil)

	if !errors.Is(a, b) {
		t.Error("errors.Is(a, b) = false, want true for same-kind errors")
	}
	if errors.Is(a, c) {
		t.Error("errors.Is(a, c) = true, want false for different-kind errors")
	}
}
