package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/ariel-frischer/appcore/internal/lifecycle"
	"github.com/ariel-frischer/appcore/internal/output"
	"github.com/spf13/pflag"
)

// TargetStream selects a standard stream.
type TargetStream string

const (
	StreamStdout TargetStream = "stdout"
	StreamStderr TargetStream = "stderr"
)

// String implements pflag.Value.
func (s TargetStream) String() string { return string(s) }

// Set implements pflag.Value.
func (s *TargetStream) Set(value string) error {
	switch TargetStream(value) {
	case StreamStdout, StreamStderr:
		*s = TargetStream(value)
		return nil
	default:
		return fmt.Errorf("invalid stream %q: valid values are stdout, stderr", value)
	}
}

// Type implements pflag.Value.
func (s *TargetStream) Type() string { return "stream" }

// writer returns the stream, defaulting to standard error.
func (s TargetStream) writer() io.Writer {
	if s == StreamStdout {
		return os.Stdout
	}
	return os.Stderr
}

// DisplayOptions control how command results are presented.
type DisplayOptions struct {
	// Colorize renders with color and other attributes when the target
	// supports them.
	Colorize bool
	// ForceColorize renders with color even when the target is not a terminal.
	ForceColorize bool
	Presentation  output.Presentation
	// TargetFile receives output instead of a stream. Parent directories
	// are created.
	TargetFile   string
	TargetStream TargetStream
}

// DefaultDisplayOptions returns colorized rich output on standard output.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Colorize:     true,
		Presentation: output.PresentationRich,
		TargetStream: StreamStdout,
	}
}

// AddFlags registers the display flags.
func (o *DisplayOptions) AddFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&o.Colorize, "colorize", o.Colorize, "Render with color and other attributes")
	flags.BoolVar(&o.ForceColorize, "force-colorize", o.ForceColorize, "Render with color even when output is not a terminal")
	flags.VarP(&o.Presentation, "presentation", "p",
		"Output presentation ("+strings.Join(output.PresentationNames(), ", ")+")")
	flags.StringVar(&o.TargetFile, "console-file", o.TargetFile, "Render output to the specified file")
	flags.Var(&o.TargetStream, "console-stream", "Render output on stdout or stderr")
}

// ProvideStream returns the output target. An opened file is closed when
// exits is closed.
func (o DisplayOptions) ProvideStream(exits *lifecycle.Exits) (io.Writer, error) {
	if o.TargetFile == "" {
		return o.TargetStream.writer(), nil
	}
	return openTarget(exits, o.TargetFile)
}

// DetermineColorization reports whether output to w should be colorized.
func (o DisplayOptions) DetermineColorization(w io.Writer) bool {
	if o.ForceColorize {
		return true
	}
	if !o.Colorize {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return output.IsTerminal(w)
}

// Render writes record to the output target under a title.
func (o DisplayOptions) Render(exits *lifecycle.Exits, title string, record output.Record) error {
	w, err := o.ProvideStream(exits)
	if err != nil {
		return err
	}
	colorize := o.DetermineColorization(w)
	if o.Presentation == output.PresentationRich && colorize {
		output.PrintSeparator(w, title, true)
	}
	return output.Render(w, o.Presentation, record, colorize)
}

// openTarget creates path and its parents, and pushes the file's closure
// onto exits.
func openTarget(exits *lifecycle.Exits, path string) (io.Writer, error) {
	location, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
		return nil, notWritable(location, err)
	}
	f, err := os.Create(location)
	if err != nil {
		return nil, notWritable(location, err)
	}
	if err := exits.PushCloser(f); err != nil {
		return nil, err
	}
	return f, nil
}

func notWritable(location string, cause error) error {
	cliErr := apperrors.FileNotWritable(location)
	cliErr.Cause = cause
	return cliErr
}
