package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/x/term"
)

// ErrAborted is returned when the user cancels an interactive prompt.
var ErrAborted = errors.New("aborted by user")

// Out is where Print helpers write.
var Out io.Writer = os.Stdout

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// NormalizeAbort maps huh's abort error to ErrAborted.
func NormalizeAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// IsAbort reports whether err is a user cancellation.
func IsAbort(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, huh.ErrUserAborted)
}

// RunWithSpinner runs fn behind a spinner titled title. Without a terminal
// fn runs directly.
func RunWithSpinner(title string, fn func() error) error {
	if !IsInteractive() {
		return fn()
	}

	var err error
	if spinErr := spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run(); spinErr != nil {
		return spinErr
	}
	return err
}

func PrintSuccess(msg string) {
	fmt.Fprintln(Out, SuccessBadge.Render("OK")+" "+msg)
}

func PrintInfo(msg string) {
	fmt.Fprintln(Out, InfoBadge.Render("INFO")+" "+msg)
}

func PrintWarning(msg string) {
	fmt.Fprintln(Out, WarningBadge.Render("WARN")+" "+msg)
}

func PrintError(msg string) {
	fmt.Fprintln(Out, ErrorBadge.Render("ERROR")+" "+msg)
}
