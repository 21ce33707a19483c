package cli

import (
	"io"

	apperrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/ariel-frischer/appcore/internal/inscription"
	"github.com/ariel-frischer/appcore/internal/lifecycle"
	"github.com/spf13/pflag"
)

// InscriptionControl holds the logging flags.
type InscriptionControl struct {
	Level        string
	Presentation string
	TargetFile   string
	TargetStream TargetStream
}

// DefaultInscriptionControl returns plain logging at info level on
// standard error.
func DefaultInscriptionControl() InscriptionControl {
	return InscriptionControl{
		Level:        "info",
		Presentation: string(inscription.ModePlain),
		TargetStream: StreamStderr,
	}
}

// AddFlags registers the logging flags.
func (c *InscriptionControl) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, "log-level", c.Level, "Log verbosity (debug, info, warn, error, critical)")
	flags.StringVar(&c.Presentation, "log-presentation", c.Presentation, "Log presentation (null, plain, rich)")
	flags.StringVar(&c.TargetFile, "log-file", c.TargetFile, "Log to the specified file")
	flags.Var(&c.TargetStream, "log-stream", "Log to stdout or stderr")
}

// AsControl validates the flags and produces an inscription control. A log
// file is closed when exits is closed.
func (c InscriptionControl) AsControl(exits *lifecycle.Exits) (inscription.Control, error) {
	mode, err := inscription.ParseMode(c.Presentation)
	if err != nil {
		return inscription.Control{}, apperrors.NewArgumentError(err.Error(),
			"Use --log-presentation with one of: null, plain, rich")
	}
	if _, err := inscription.ParseLevel(c.Level); err != nil {
		return inscription.Control{}, apperrors.NewArgumentError(err.Error())
	}
	var target io.Writer
	if c.TargetFile != "" {
		target, err = openTarget(exits, c.TargetFile)
		if err != nil {
			return inscription.Control{}, err
		}
	} else {
		target = c.TargetStream.writer()
	}
	return inscription.Control{Mode: mode, Level: c.Level, Target: target}, nil
}
