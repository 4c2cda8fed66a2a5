// Package main provides the pmsrp CLI tool.
//
// pmsrp computes client-side SRP proofs for Proton logins and generates
// password verifiers, after authenticating the server-supplied modulus
// against the pinned Proton signing key.
package main

import (
	"os"

	"github.com/fzdarsky/pmsrp/internal/cli/commands"
)

const version = "1.0.0"

func main() {
	os.Exit(commands.Execute(commands.NewRootCommand(version)))
}
