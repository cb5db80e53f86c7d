package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// FzfSelector hands the candidates to fzf through temporary files.
type FzfSelector struct {
	Bin  string
	Args []string
	// TempDir holds the exchange files. Empty means os.TempDir().
	TempDir string

	log *logrus.Logger
}

// fzf exit codes that mean "nothing chosen"
const (
	fzfNoMatch     = 1
	fzfInterrupted = 130
)

// Select writes the candidates to one temp file, runs fzf reading it on
// stdin and writing the choice to a second temp file, and returns the first
// line of the choice. Both files are removed before Select returns.
func (s *FzfSelector) Select(ctx context.Context, candidates []string) (string, error) {
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	in, err := os.CreateTemp(s.TempDir, "pdfextbook-choices-*")
	if err != nil {
		return "", fmt.Errorf("creating choices file: %w", err)
	}
	defer os.Remove(in.Name())

	if _, err := in.WriteString(strings.Join(candidates, "\n")); err != nil {
		in.Close()
		return "", fmt.Errorf("writing choices file: %w", err)
	}
	if _, err := in.Seek(0, 0); err != nil {
		in.Close()
		return "", fmt.Errorf("rewinding choices file: %w", err)
	}
	defer in.Close()

	out, err := os.CreateTemp(s.TempDir, "pdfextbook-choice-*")
	if err != nil {
		return "", fmt.Errorf("creating choice file: %w", err)
	}
	defer os.Remove(out.Name())
	defer out.Close()

	s.log.WithField("cmd", s.Bin+" "+strings.Join(s.Args, " ")).Debug("running selector")

	cmd := exec.CommandContext(ctx, s.Bin, s.Args...)
	cmd.Stdin = in
	cmd.Stdout = out
	// fzf draws its interface on stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			switch exitErr.ExitCode() {
			case fzfNoMatch, fzfInterrupted:
				return "", nil
			}
		}
		return "", fmt.Errorf("%s: %w", s.Bin, err)
	}

	if _, err := out.Seek(0, 0); err != nil {
		return "", fmt.Errorf("rewinding choice file: %w", err)
	}
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading choice file: %w", err)
	}
	return "", nil
}
