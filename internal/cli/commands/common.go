package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fzdarsky/pmsrp/internal/auth"
	"github.com/fzdarsky/pmsrp/internal/cli/output"
	"github.com/fzdarsky/pmsrp/pkg/modulus"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

// Execute runs cmd and returns the process exit status. Failures are written
// to stderr as a JSON error object.
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		writeError(cmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// readInput returns the first argument, or all of stdin when no argument is
// given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	var data []byte
	if len(args) > 0 {
		data = []byte(args[0])
	} else {
		var err error
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("empty input: %w", protocol.ErrMalformedInput)
	}
	return data, nil
}

// decodeRequest unmarshals a JSON request into v.
func decodeRequest(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid request JSON (%v): %w", err, protocol.ErrMalformedInput)
	}
	return nil
}

// newService builds the auth service over the pinned modulus key.
func newService(opts *globalOptions) (*auth.Service, error) {
	source, err := modulus.NewVerifier()
	if err != nil {
		return nil, err
	}
	return auth.NewService(source, auth.SRPEngine{}, opts.logger, opts.cfg.Workers.VerifierPool), nil
}

// writeOutput writes data to stdout in the selected output format.
func writeOutput(cmd *cobra.Command, opts *globalOptions, data any) error {
	return output.Write(cmd.OutOrStdout(), data, opts.out)
}

// writeError prints err as a JSON protocol.ErrorResponse.
func writeError(w io.Writer, err error) {
	if writeErr := output.Write(w, protocol.FromError(err), output.FormatJSON); writeErr != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// fillPassword prompts for the password when requested and the request
// omits it. Prompting needs stdin, so the request must come as an argument.
func fillPassword(cmd *cobra.Command, args []string, prompt bool, password *string) error {
	if !prompt || *password != "" {
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("--prompt-password needs the request as an argument: %w", protocol.ErrMalformedInput)
	}

	p, err := promptPassword(cmd)
	if err != nil {
		return err
	}
	*password = p
	return nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--prompt-password requires an interactive terminal: %w", protocol.ErrMalformedInput)
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
