package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/odysseus0/ankiconv/internal/docio"
)

const (
	exitInvalidInput = 2
	exitNotFound     = 3
	exitInternal     = 1
)

func ErrorExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, docio.ErrInvalidInput):
		return exitInvalidInput
	case errors.Is(err, docio.ErrNotFound):
		return exitNotFound
	default:
		return exitInternal
	}
}

func FormatError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, docio.ErrInvalidInput):
		return fmt.Sprintf("Error [invalid-input]: %v", err)
	case errors.Is(err, docio.ErrNotFound):
		return fmt.Sprintf("Error [not-found]: %v", err)
	default:
		return fmt.Sprintf("Error [internal]: %v", err)
	}
}

func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
