package workflow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptUserToContinue asks the operator a yes/no question on stdout and
// reads the answer from stdin. Only "y" or "yes" (case-insensitive) continue.
func PromptUserToContinue(prompt string) (bool, error) {
	return promptUserToContinue(prompt, os.Stdin, os.Stdout)
}

func promptUserToContinue(prompt string, in io.Reader, out io.Writer) (bool, error) {
	if prompt == "" {
		prompt = "Continue?"
	}
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("reading response: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
