package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/odysseus0/ankiconv/internal/docio"
)

func TestErrorExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("read: %w", docio.ErrInvalidInput), exitInvalidInput},
		{fmt.Errorf("input %q: %w", "x", docio.ErrNotFound), exitNotFound},
		{errors.New("disk full"), exitInternal},
	}
	for _, tc := range cases {
		if got := ErrorExitCode(tc.err); got != tc.want {
			t.Fatalf("ErrorExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(nil); got != "" {
		t.Fatalf("FormatError(nil) = %q", got)
	}
	if got := FormatError(fmt.Errorf("%w: bad", docio.ErrInvalidInput)); got != "Error [invalid-input]: invalid input: bad" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := FormatError(errors.New("boom")); got != "Error [internal]: boom" {
		t.Fatalf("unexpected: %q", got)
	}
}
