// Package cmd implements the mk command-line interface.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"menukeeper/internal/catalog"
	"menukeeper/internal/config"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// App holds application state shared across commands.
type App struct {
	Catalog     *catalog.Manager
	ConfigStore config.Store
	ConfigDir   string // path to .menukeeper directory; empty for ephemeral runs without one
	Logger      *zap.Logger
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	JSON        bool // output in JSON format

	// Confirm asks a yes/no question. Nil means every question is answered yes.
	Confirm func(prompt string) (bool, error)

	closers []func(context.Context) error
}

// Close releases backend connections opened during initialization.
func (a *App) Close(ctx context.Context) error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// confirm runs a.Confirm, treating a nil Confirm as consent.
func (a *App) confirm(prompt string) (bool, error) {
	if a.Confirm == nil {
		return true, nil
	}
	return a.Confirm(prompt)
}

// SuccessColor returns the string wrapped in green ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if isTerminal(a.Out) {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

// WarnColor returns the string wrapped in orange ANSI codes if stderr is a terminal,
// otherwise returns the string unchanged.
func (a *App) WarnColor(s string) string {
	if isTerminal(a.Err) {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalConfirm prompts on out and reads a y/N answer from in. When in is
// not a terminal there is nobody to ask, so it returns nil and callers
// proceed without confirmation.
func terminalConfirm(in io.Reader, out io.Writer) func(string) (bool, error) {
	if !isTerminal(in) {
		return nil
	}
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		response, err := reader.ReadString('\n')
		if err != nil && response == "" {
			return false, fmt.Errorf("reading confirmation: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		return response == "y" || response == "yes", nil
	}
}
