package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrAborted is returned when the user declines or interrupts a prompt.
var ErrAborted = errors.New("aborted by user")

// ParseAnswer interprets a yes/no answer. An empty answer means no.
func ParseAnswer(answer string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "", "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("please answer y or n, not %q", answer)
	}
}

// Confirm asks question on the terminal and waits for y or n. It keeps
// asking on invalid answers and returns ErrAborted on Ctrl-C or EOF.
func Confirm(question string, stdin io.ReadCloser, stdout io.Writer) (bool, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          question + " [y/N]: ",
		InterruptPrompt: "^C",
		Stdin:           stdin,
		Stdout:          stdout,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return false, ErrAborted
		}
		if err != nil {
			return false, err
		}
		ok, err := ParseAnswer(line)
		if err != nil {
			fmt.Fprintln(stdout, err)
			continue
		}
		return ok, nil
	}
}
