package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage signing keys",
}

var accountImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Seal a secret into the keystore",
	Long: `Reads a mnemonic, 0x seed, or derivation URI from stdin and stores it
sealed with KEYSTORE_PASSPHRASE. Prints the resulting address.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, "secret: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read secret: %w", err)
		}
		secret := strings.TrimSpace(line)
		if secret == "" {
			return errors.New("secret is required")
		}

		return run(cmd, true, false, func(ctx context.Context, e *env) error {
			acct, err := e.keystore.Import(ctx, secret)
			if err != nil {
				return err
			}
			return printJSON(acct)
		})
	},
}

func init() {
	accountCmd.AddCommand(accountImportCmd)
}
