// Package selector asks the user to choose one candidate line and to confirm
// an output path.
package selector

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownSelector is returned by New for an unrecognized selector name.
	ErrUnknownSelector = errors.New("unknown selector")
	// ErrAborted is returned when the user cancels a prompt.
	ErrAborted = errors.New("aborted by user")
)

// Selector name constants
const (
	NameFzf     = "fzf"
	NameBuiltin = "builtin"
)

// Selector presents candidates and returns the chosen line. An empty string
// with a nil error means the user made no choice.
type Selector interface {
	Select(ctx context.Context, candidates []string) (string, error)
}

// Prompter asks for a line of text, pre-filled with a default value.
type Prompter interface {
	Prompt(ctx context.Context, label, def string) (string, error)
}

// Options configures the selectors built by New.
type Options struct {
	FzfBin  string
	FzfArgs []string
	Log     *logrus.Logger
}

// New creates a Selector by name.
func New(name string, opts Options) (Selector, error) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	switch name {
	case NameFzf:
		s := &FzfSelector{Bin: opts.FzfBin, Args: opts.FzfArgs, log: opts.Log}
		if s.Bin == "" {
			s.Bin = "fzf"
		}
		if s.Args == nil {
			s.Args = []string{"--reverse"}
		}
		return s, nil
	case NameBuiltin:
		return &Picker{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid options: fzf, builtin)", ErrUnknownSelector, name)
	}
}
