package cli

import (
	"io"

	"github.com/urfave/cli/v3"
)

// NewCommandForTest builds the root command with the given terminal streams
func NewCommandForTest(version string, in io.Reader, out io.Writer) *cli.Command {
	cmd := newCommand(version)
	cmd.Reader = in
	cmd.Writer = out
	return cmd
}
