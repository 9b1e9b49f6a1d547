package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheusHen/safeid/safeid/keystore"
	"github.com/TheusHen/safeid/safeid/record"
)

func generateCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a record and store it sealed under the passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			path := cfg.RecordPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			a, err := record.Generate()
			if err != nil {
				return err
			}
			if err := keystore.Save(path, passphrase, a, cfg.Keystore); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record created.\nAddress: %s\n", a.Address())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing record")
	return cmd
}
