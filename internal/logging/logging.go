// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Options selects where and how much to log.
type Options struct {
	Level string
	// File, when set, receives all output. Interactive front ends must set it
	// or use Discard since the terminal belongs to the UI.
	File    string
	Discard bool
	JSON    bool
}

var (
	level = new(slog.LevelVar)
	once  sync.Once
	file  io.Closer
)

// ParseLevel maps debug/info/warn/error onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// Setup installs the default logger. Only the first call configures the
// destination; later calls only adjust the level.
func Setup(opts Options) error {
	lvl := slog.LevelInfo
	if opts.Level != "" {
		var err error
		if lvl, err = ParseLevel(opts.Level); err != nil {
			return err
		}
	}
	level.Set(lvl)

	var setupErr error
	once.Do(func() {
		var w io.Writer = os.Stderr
		switch {
		case opts.File != "":
			f, err := tea.LogToFile(opts.File, "console")
			if err != nil {
				setupErr = fmt.Errorf("open log file: %w", err)
				return
			}
			file = f
			w = f
		case opts.Discard:
			w = io.Discard
		}
		slog.SetDefault(slog.New(newHandler(w, opts.JSON)))
	})
	return setupErr
}

// SetLevel changes the level of the installed logger.
func SetLevel(l slog.Level) { level.Set(l) }

// Level reports the current level.
func Level() slog.Level { return level.Level() }

// Close releases the log file, if any.
func Close() error {
	if file == nil {
		return nil
	}
	return file.Close()
}

func newHandler(w io.Writer, json bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
