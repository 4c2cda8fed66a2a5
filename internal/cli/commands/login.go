package commands

import (
	"github.com/spf13/cobra"

	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

func newLoginCommand(opts *globalOptions) *cobra.Command {
	var prompt bool

	cmd := &cobra.Command{
		Use:   "login [request-json]",
		Short: "Compute the client proof for an authentication challenge",
		Long: `Compute the SRP client ephemeral and proof for a login.

The request carries the auth info response fields (Modulus, ServerEphemeral,
Salt, Version, SRPSession) together with Username and Password.`,
		Example: `  # Request as argument
  pmsrp login '{"Username":"alice","Password":"...","Modulus":"-----BEGIN PGP SIGNED MESSAGE-----...",
    "ServerEphemeral":"...","Salt":"...","Version":4,"SRPSession":"..."}'

  # Request on stdin
  pmsrp login < auth-info.json

  # Password from the terminal
  pmsrp login --prompt-password "$(cat auth-info.json)"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var req protocol.LoginRequest
			if err := decodeRequest(data, &req); err != nil {
				return err
			}

			if err := fillPassword(cmd, args, prompt, &req.Password); err != nil {
				return err
			}

			svc, err := newService(opts)
			if err != nil {
				return err
			}

			resp, err := svc.Login(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, resp)
		},
	}

	cmd.Flags().BoolVar(&prompt, "prompt-password", false, "read the password from the terminal when the request omits it")
	return cmd
}
