package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fzdarsky/pmsrp/internal/modmath"
	"github.com/fzdarsky/pmsrp/pkg/codec"
	"github.com/fzdarsky/pmsrp/pkg/modulus"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

// modulusInfo describes an authenticated modulus.
type modulusInfo struct {
	Modulus   string `json:"modulus" yaml:"modulus"`
	Bits      int    `json:"bits" yaml:"bits"`
	SafePrime bool   `json:"safePrime" yaml:"safePrime"`
}

func newModulusCommand(opts *globalOptions) *cobra.Command {
	var showKey bool

	cmd := &cobra.Command{
		Use:   "modulus [armored-file]",
		Short: "Verify a signed modulus and print its contents",
		Long: `Verify a PGP clearsigned modulus against the pinned Proton key and print the
decoded modulus. The message is read from the named file, or from stdin.`,
		Example: `  pmsrp modulus modulus.asc

  # Print the pinned verification key
  pmsrp modulus --public-key`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showKey {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), modulus.PublicKey())
				return err
			}

			var armored []byte
			var err error
			if len(args) > 0 {
				//nolint:gosec // G304: path is from command-line argument
				armored, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read modulus file: %w", err)
				}
			} else if armored, err = readInput(cmd, nil); err != nil {
				return err
			}

			verifier, err := modulus.NewVerifier()
			if err != nil {
				return err
			}

			raw, err := verifier.Decode(string(armored))
			if err != nil {
				return err
			}
			opts.logger.Debug("modulus signature verified", map[string]any{"bytes": len(raw)})

			n := modmath.LittleEndian.Int(raw)
			info := modulusInfo{
				Modulus:   codec.EncodeBase64(raw),
				Bits:      n.BitLen(),
				SafePrime: modmath.CheckSafePrime(n) == nil,
			}
			if !info.SafePrime {
				opts.logger.Warn("signed modulus is not a safe prime")
				return fmt.Errorf("signed modulus is not a safe prime: %w", protocol.ErrProtocolViolation)
			}
			return writeOutput(cmd, opts, info)
		},
	}

	cmd.Flags().BoolVar(&showKey, "public-key", false, "print the pinned verification key and exit")
	return cmd
}
