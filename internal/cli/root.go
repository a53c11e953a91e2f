package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/upb/ai-proxy/app"
)

// Process exit codes
const (
	ExitSuccess       = 0
	ExitProviderError = 1
	ExitUsageError    = 2
	ExitConfigError   = 3
	ExitRuntimeError  = 4
)

var errorText = color.New(color.FgRed, color.Bold)

// exitError carries the process exit code for a failed command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// Run executes the root command with the process arguments and returns an exit code.
func Run() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	errorText.Fprintln(stderr, err.Error())

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitUsageError
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ai-proxy",
		Short:         "Forward prompts to Qwen, Gemini or ChatGPT",
		Long:          "ai-proxy sends a single prompt to a hosted LLM provider, optionally through an outbound proxy, and reports a normalized result.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPromptCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print ai-proxy version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ai-proxy version %s\n", app.Version)
		},
	}
}
