package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felora-io/felora-cli/internal/ports"
)

// promptConfirmer asks a y/N question on the command's own streams. With
// --yes it answers true without prompting, which is what scripts want.
type promptConfirmer struct {
	in        io.Reader
	out       io.Writer
	assumeYes bool
}

var _ ports.Confirmer = promptConfirmer{}

func newConfirmer(cmd *cobra.Command, assumeYes bool) promptConfirmer {
	return promptConfirmer{
		in:        cmd.InOrStdin(),
		out:       cmd.OutOrStdout(),
		assumeYes: assumeYes,
	}
}

func (c promptConfirmer) Confirm(prompt string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}

	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
