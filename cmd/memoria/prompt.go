package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter asks for values a command was not given as flags.
type prompter struct {
	in  *bufio.Reader
	raw io.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{
		in:  bufio.NewReader(cmd.InOrStdin()),
		raw: cmd.InOrStdin(),
		out: cmd.ErrOrStderr(),
	}
}

// value returns current when set, otherwise reads one line.
func (p *prompter) value(label, current string) (string, error) {
	if strings.TrimSpace(current) != "" {
		return strings.TrimSpace(current), nil
	}
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// secret is value without echo when stdin is a terminal.
func (p *prompter) secret(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	file, ok := p.raw.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return p.value(label, current)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	data, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(data), nil
}

func requireValues(values map[string]string) error {
	var missing []string
	for _, name := range []string{"username", "email", "password"} {
		if v, ok := values[name]; ok && strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}
