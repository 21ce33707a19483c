package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ariel-frischer/appcore/internal/application"
	apperrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/ariel-frischer/appcore/internal/lifecycle"
	"github.com/ariel-frischer/appcore/internal/output"
	"github.com/ariel-frischer/appcore/internal/preparation"
	"github.com/ariel-frischer/appcore/internal/state"
	"gopkg.in/yaml.v3"
)

// Command is executed with the prepared global state.
type Command interface {
	Execute(ctx context.Context, globals *state.Globals) error
}

// CommandFunc adapts a function to the Command interface.
type CommandFunc func(ctx context.Context, globals *state.Globals) error

// Execute implements Command.
func (f CommandFunc) Execute(ctx context.Context, globals *state.Globals) error {
	return f(ctx, globals)
}

// Application prepares global state for a command, executes it, and
// reports any failure in the selected presentation.
type Application struct {
	Information application.Information
	Display     DisplayOptions
	Inscription InscriptionControl
	// ConfigFile replaces discovery of the user configuration file.
	ConfigFile string
	// Environment loads dotenv overlays.
	Environment bool
	// Preparation supplies further options such as directories or
	// configuration edits. Fields set on Application take precedence.
	Preparation preparation.Options
	// Handler receives completion reports. Nil logs them at debug level.
	Handler lifecycle.CompletionHandler
}

// NewApplication returns an application with default display and logging.
func NewApplication(info application.Information) *Application {
	return &Application{
		Information: info,
		Display:     DefaultDisplayOptions(),
		Inscription: DefaultInscriptionControl(),
		Environment: true,
	}
}

// Run prepares global state within an exit stack and executes command.
// Failures are rendered before Run returns an *ExitError.
func (a *Application) Run(ctx context.Context, name string, command Command) (err error) {
	exits := lifecycle.NewExits()
	defer func() {
		if closeErr := exits.Close(); closeErr != nil && err == nil {
			err = &ExitError{Code: ExitFailure, Err: closeErr}
		}
	}()

	globals, err := a.Prepare(ctx, exits)
	if err != nil {
		return a.intercept(exits, err)
	}
	handler := a.Handler
	if handler == nil {
		handler = &lifecycle.LogHandler{Logger: slog.Default()}
	}
	err = lifecycle.RunWithContext(ctx, handler, name, func(ctx context.Context) error {
		return command.Execute(ctx, globals)
	})
	if err != nil {
		return a.intercept(exits, err)
	}
	return nil
}

// Prepare assembles global state; resources are released when exits is
// closed.
func (a *Application) Prepare(ctx context.Context, exits *lifecycle.Exits) (*state.Globals, error) {
	control, err := a.Inscription.AsControl(exits)
	if err != nil {
		return nil, err
	}
	opts := a.Preparation
	opts.Application = a.Information
	opts.Inscription = &control
	opts.Environment = a.Environment
	if a.ConfigFile != "" {
		if _, err := os.Stat(a.ConfigFile); err != nil {
			cliErr := apperrors.ConfigFileNotFound(a.ConfigFile)
			cliErr.Cause = err
			return nil, cliErr
		}
		opts.ConfigFile = a.ConfigFile
	}
	return preparation.Prepare(ctx, exits, opts)
}

// intercept renders err to the display target and wraps it with its exit
// code. If the display target is unusable the error is written to standard
// error.
func (a *Application) intercept(exits *lifecycle.Exits, err error) error {
	w, streamErr := a.Display.ProvideStream(exits)
	if streamErr != nil {
		w = StreamStderr.writer()
	}
	if renderErr := renderError(w, a.Display, err); renderErr != nil {
		apperrors.FprintError(StreamStderr.writer(), err, false)
	}
	return &ExitError{Code: ExitCode(err), Err: err}
}

// renderError writes err in the display presentation. Structured
// presentations carry the error dictionary; plain is Markdown; rich is the
// categorized terminal format.
func renderError(w io.Writer, display DisplayOptions, err error) error {
	switch display.Presentation {
	case output.PresentationJSON:
		text, renderErr := apperrors.RenderJSON(err, false, 2)
		if renderErr != nil {
			return renderErr
		}
		_, renderErr = fmt.Fprintln(w, text)
		return renderErr
	case output.PresentationTOML:
		text, renderErr := apperrors.RenderTOML(err)
		if renderErr != nil {
			return renderErr
		}
		_, renderErr = io.WriteString(w, text)
		return renderErr
	case output.PresentationYAML:
		encoder := yaml.NewEncoder(w)
		if renderErr := encoder.Encode(apperrors.RenderDictionary(err)); renderErr != nil {
			return renderErr
		}
		return encoder.Close()
	case output.PresentationPlain:
		for _, line := range apperrors.RenderMarkdown(err) {
			if _, renderErr := fmt.Fprintln(w, line); renderErr != nil {
				return renderErr
			}
		}
		return nil
	default:
		apperrors.FprintError(w, err, display.DetermineColorization(w))
		return nil
	}
}
