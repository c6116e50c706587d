// internal/common/prompt/prompt.go
package prompt

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "theme-mapper/internal/common/errors"
	"theme-mapper/internal/models"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	tenantMessage = "Enter your tenant domain: "
	apiKeyMessage = "Enter API Key: "
	themeMessage  = "Select a theme: "
)

// ErrNoInput is returned when input ends before an answer was given.
var ErrNoInput = stderrors.New("no input")

// Prompter asks the operator for the values the configuration left empty.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	secretFd int
	hidden   bool
	cyan     func(a ...interface{}) string
}

// New reads answers from in. API key input is hidden when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		secretFd: -1,
		cyan:     color.New(color.FgCyan).SprintFunc(),
	}
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.hidden = true
		p.secretFd = int(f.Fd())
	}
	return p
}

func (p *Prompter) Tenant() (string, error) {
	answer, err := p.ask(tenantMessage)
	if err != nil {
		return "", apperrors.NewPromptFailedError("tenant domain", err)
	}
	return answer, nil
}

func (p *Prompter) APIKey() (string, error) {
	if !p.hidden {
		answer, err := p.ask(apiKeyMessage)
		if err != nil {
			return "", apperrors.NewPromptFailedError("API key", err)
		}
		return answer, nil
	}

	for {
		fmt.Fprint(p.out, p.cyan(apiKeyMessage))
		secret, err := term.ReadPassword(p.secretFd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", apperrors.NewPromptFailedError("API key", err)
		}
		if answer := strings.TrimSpace(string(secret)); answer != "" {
			return answer, nil
		}
	}
}

// SelectTheme lists themes by name and accepts either the list number or
// the exact name. Invalid answers are asked again.
func (p *Prompter) SelectTheme(themes []models.ThemeDescriptor) (models.ThemeDescriptor, error) {
	if len(themes) == 0 {
		return models.ThemeDescriptor{}, apperrors.NewPromptFailedError("theme choice", stderrors.New("no themes to choose from"))
	}

	for i, theme := range themes {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, theme.Name)
	}

	for {
		answer, err := p.ask(themeMessage)
		if err != nil {
			return models.ThemeDescriptor{}, apperrors.NewPromptFailedError("theme choice", err)
		}
		if theme, ok := choose(themes, answer); ok {
			return theme, nil
		}
		fmt.Fprintf(p.out, "%q is not in the list\n", answer)
	}
}

// choose matches answer against theme names first, then list numbers.
func choose(themes []models.ThemeDescriptor, answer string) (models.ThemeDescriptor, bool) {
	for _, theme := range themes {
		if theme.Name == answer {
			return theme, true
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(themes) {
		return themes[n-1], true
	}
	return models.ThemeDescriptor{}, false
}

// ask repeats message until a non-blank line is read.
func (p *Prompter) ask(message string) (string, error) {
	for {
		fmt.Fprint(p.out, p.cyan(message))
		line, err := p.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer != "" {
			return answer, nil
		}
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return "", ErrNoInput
			}
			return "", err
		}
	}
}
