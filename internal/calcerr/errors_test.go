package calcerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewFormatsReason(t *testing.T) {
	err := New(Extraction, "need %d operands", 2)
	if err.Error() != "need 2 operands" {
		t.Fatalf("expected %q, got %q", "need 2 operands", err.Error())
	}
	if KindOf(err) != Extraction {
		t.Fatalf("expected kind %q, got %q", Extraction, KindOf(err))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(IO, cause, "write chart")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped error to match cause")
	}
	if err.Error() != "write chart: permission denied" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if Wrap(IO, nil, "nothing") != nil {
		t.Fatal("expected nil for nil cause")
	}
}

func TestKindOfThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("calculate: %w", New(Evaluation, "bad syntax"))
	if got := KindOf(err); got != Evaluation {
		t.Fatalf("expected %q, got %q", Evaluation, got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Fatalf("expected empty kind, got %q", got)
	}
}
