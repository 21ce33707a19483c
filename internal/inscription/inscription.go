// Package inscription configures application logging. All logging goes
// through log/slog; this package chooses and installs the handler.
package inscription

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Mode selects the logging presentation.
type Mode string

const (
	// ModeNull is a minimal "LEVEL: message" presentation.
	ModeNull Mode = "null"
	// ModePlain is the standard structured text presentation.
	ModePlain Mode = "plain"
	// ModeRich is a styled presentation with timestamps. It degrades to
	// plain when the target is not a terminal.
	ModeRich Mode = "rich"
)

// Modes returns every mode in a stable order.
func Modes() []Mode {
	return []Mode{ModeNull, ModePlain, ModeRich}
}

// ParseMode parses a mode name, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(s)); mode {
	case ModeNull, ModePlain, ModeRich:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid logging presentation %q: valid values are null, plain, rich", s)
	}
}

// LevelCritical ranks above slog.LevelError.
const LevelCritical = slog.LevelError + 4

// DefaultEnvPrefix prefixes the level override variables.
const DefaultEnvPrefix = "APPCORE"

// Control configures logging.
type Control struct {
	Mode Mode
	// Level is one of debug, info, warn, error, critical.
	Level string
	// Target receives log output; nil means standard error.
	Target io.Writer
	// EnvPrefix names the override variables <prefix>_INSCRIPTION_LEVEL and
	// <prefix>_LOG_LEVEL; empty means DefaultEnvPrefix.
	EnvPrefix string
}

// DefaultControl returns plain logging at info level to standard error.
func DefaultControl() Control {
	return Control{Mode: ModePlain, Level: "info"}
}

// ParseLevel parses a level name, ignoring case.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "critical":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("invalid logging level %q: valid values are debug, info, warn, error, critical", name)
	}
}

// DiscoverLevelName returns the level from the environment override
// variables, in order, or from the control.
func DiscoverLevelName(control Control) string {
	prefix := control.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	for _, base := range []string{"INSCRIPTION", "LOG"} {
		if value, ok := os.LookupEnv(strings.ToUpper(prefix) + "_" + base + "_LEVEL"); ok {
			return value
		}
	}
	return control.Level
}

// Prepare builds a logger from control and installs it as the slog default.
func Prepare(control Control) (*slog.Logger, error) {
	level, err := ParseLevel(DiscoverLevelName(control))
	if err != nil {
		return nil, err
	}
	logger := slog.New(NewHandler(control, level))
	slog.SetDefault(logger)
	return logger, nil
}

// NewHandler returns the handler for control's mode at level.
func NewHandler(control Control, level slog.Level) slog.Handler {
	target := control.Target
	if target == nil {
		target = os.Stderr
	}
	switch control.Mode {
	case ModeNull:
		return newMessageHandler(target, level)
	case ModeRich:
		if isTerminal(target) {
			return log.NewWithOptions(target, log.Options{
				Level:           log.Level(level),
				ReportTimestamp: true,
			})
		}
		return newPlainHandler(target, level)
	default:
		return newPlainHandler(target, level)
	}
}

func newPlainHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	})
}

// replaceLevel names the critical level.
func replaceLevel(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok && level >= LevelCritical {
			attr.Value = slog.StringValue("CRITICAL")
		}
	}
	return attr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
