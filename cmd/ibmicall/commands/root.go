// Package commands implements the ibmicall CLI subcommands.
package commands

import (
	"fmt"
	"os"
	"time"

	ibmi "github.com/ibmigo/ibmiconnector"
	"github.com/spf13/cobra"
)

var (
	// Version is injected at build time via -ldflags.
	Version = "dev"

	connHost              string
	connUser              string
	connPassword          string
	connTempLibrary       string
	connUseTLS            bool
	connAcceptAnyCert     bool
	connSignonPort        int
	connRemoteCommandPort int
	connDialTimeout       time.Duration
	connVerbose           bool
)

var rootCmd = &cobra.Command{
	Use:           "ibmicall",
	Short:         "Drive an IBM i host-server session from the shell",
	Long:          `ibmicall connects to the Sign-on Verify and Remote Command host servers and runs a single CL command or program call, printing the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&connHost, "host", "", "IBM i host name or address (required)")
	flags.StringVar(&connUser, "user", "", "user profile (required)")
	flags.StringVar(&connPassword, "password", "", "password (falls back to IBMICALL_PASSWORD)")
	flags.StringVar(&connTempLibrary, "temp-library", "", "temporary library name stored in the connection config (no call reads it)")
	flags.BoolVar(&connUseTLS, "tls", false, "connect over TLS")
	flags.BoolVar(&connAcceptAnyCert, "tls-insecure", false, "accept any TLS certificate (lab/testing only)")
	flags.IntVar(&connSignonPort, "signon-port", 0, "Sign-on Verify server port (default 8476, or 9476 under TLS)")
	flags.IntVar(&connRemoteCommandPort, "remote-command-port", 0, "Remote Command server port (default 8475, or 9475 under TLS)")
	flags.DurationVar(&connDialTimeout, "dial-timeout", 30*time.Second, "TCP dial timeout for both channels")
	flags.BoolVarP(&connVerbose, "verbose", "v", false, "log handshake and call frames to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(callCommandCmd)
	rootCmd.AddCommand(callProgramCmd)
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}

func resolvePassword() (string, error) {
	if connPassword != "" {
		return connPassword, nil
	}
	if env := os.Getenv("IBMICALL_PASSWORD"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("ibmicall: --password or IBMICALL_PASSWORD is required")
}

// connect builds a Config from the persistent connection flags and
// returns a connected Session. Callers must Disconnect it.
func connect() (*ibmi.Session, error) {
	if connHost == "" {
		return nil, fmt.Errorf("ibmicall: --host is required")
	}
	if connUser == "" {
		return nil, fmt.Errorf("ibmicall: --user is required")
	}
	password, err := resolvePassword()
	if err != nil {
		return nil, err
	}

	cfg := ibmi.NewConfig(connHost, connUser, password)
	if connTempLibrary != "" {
		cfg = cfg.WithTempLibrary(connTempLibrary)
	}
	if connUseTLS {
		cfg = cfg.WithTLS(connAcceptAnyCert)
	}

	opts := []ibmi.Option{ibmi.WithDialTimeout(connDialTimeout)}
	if connSignonPort != 0 {
		opts = append(opts, ibmi.WithSignonPort(connSignonPort))
	}
	if connRemoteCommandPort != 0 {
		opts = append(opts, ibmi.WithRemoteCommandPort(connRemoteCommandPort))
	}
	if !connVerbose {
		opts = append(opts, ibmi.WithoutLogging())
	}

	sess := ibmi.NewSession(cfg, opts...)
	if err := sess.Connect(); err != nil {
		return nil, fmt.Errorf("ibmicall: connect: %w", err)
	}
	return sess, nil
}

func printMessages(messages ibmi.CallMessages) {
	for _, m := range messages {
		fmt.Printf("  %s (severity %d): %s\n", m.ID, m.Severity, m.MessageText)
	}
}
