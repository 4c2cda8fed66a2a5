package commands

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

func newVerifierCommand(opts *globalOptions) *cobra.Command {
	var prompt bool

	cmd := &cobra.Command{
		Use:   "verifier [request-json]",
		Short: "Generate a salt and verifier for a password",
		Long: `Generate a fresh salt and SRP verifier for account creation or a password
change. The request is a single {"Password","Modulus"} object, or an array of
them which is processed on the configured worker pool.`,
		Example: `  pmsrp verifier '{"Password":"...","Modulus":"-----BEGIN PGP SIGNED MESSAGE-----..."}'

  # Batch
  pmsrp verifier < requests.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			svc, err := newService(opts)
			if err != nil {
				return err
			}

			if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
				var reqs []protocol.VerifierRequest
				if err := decodeRequest(data, &reqs); err != nil {
					return err
				}

				resps, err := svc.GenerateVerifiers(cmd.Context(), reqs)
				if err != nil {
					return err
				}
				return writeOutput(cmd, opts, resps)
			}

			var req protocol.VerifierRequest
			if err := decodeRequest(data, &req); err != nil {
				return err
			}

			if err := fillPassword(cmd, args, prompt, &req.Password); err != nil {
				return err
			}

			resp, err := svc.GenerateVerifier(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, resp)
		},
	}

	cmd.Flags().BoolVar(&prompt, "prompt-password", false, "read the password from the terminal when the request omits it")
	return cmd
}
