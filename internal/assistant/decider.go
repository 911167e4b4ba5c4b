package assistant

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/roivaz/commit-assistant/internal/assistant/validate"
)

// Decision is the user's answer when a generated message fails validation.
type Decision int

const (
	Accept Decision = iota
	Retry
	Abort
)

// DecideFunc is the injected decision point: given the generated message and
// its violations, choose to accept it as-is, retry generation, or abort.
// The CLI supplies a terminal prompt; tests supply scripted answers.
type DecideFunc func(message string, violations []validate.Violation) (Decision, error)

// TerminalDecider prompts on out and reads a one-letter answer from in.
func TerminalDecider(in io.Reader, out io.Writer) DecideFunc {
	reader := bufio.NewReader(in)
	return func(message string, violations []validate.Violation) (Decision, error) {
		fmt.Fprintln(out, "\nGenerated message:")
		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintln(out, message)
		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintln(out, "It violates the configured conventions:")
		for _, v := range violations {
			fmt.Fprintf(out, "  - %s\n", v.Message)
		}
		for {
			fmt.Fprint(out, "accept anyway, retry, or abort? [a/r/q]: ")
			answer, err := reader.ReadString('\n')
			if err != nil {
				return Abort, err
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "a", "accept":
				return Accept, nil
			case "r", "retry":
				return Retry, nil
			case "q", "abort", "n":
				return Abort, nil
			}
		}
	}
}

// AbortDecider declines every invalid message. Used by non-interactive
// surfaces where there is nobody to ask.
func AbortDecider() DecideFunc {
	return func(string, []validate.Violation) (Decision, error) {
		return Abort, nil
	}
}
