package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var callCommandCmd = &cobra.Command{
	Use:   "call-command -- <CL command>",
	Short: "Run a CL command over the Remote Command channel",
	Long: `call-command submits a single CL command string for synchronous
execution and prints any messages the server returned along with the
command's result code. A non-zero result code is not treated as a CLI
failure: it is printed like any other outcome of the call.

Example:
  ibmicall --host my400 --user QSECOFR call-command -- DSPJOB`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCallCommand,
}

func runCallCommand(cmd *cobra.Command, args []string) error {
	cl := strings.Join(args, " ")

	sess, err := connect()
	if err != nil {
		return err
	}
	defer func() { _ = sess.Disconnect() }()

	messages, resultCode, err := sess.CallCommand(cl)
	if err != nil {
		return fmt.Errorf("ibmicall: call-command: %w", err)
	}

	fmt.Printf("result code: 0x%04X\n", resultCode)
	printMessages(messages)
	return nil
}
