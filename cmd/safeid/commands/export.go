package commands

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheusHen/safeid/safeid/record"
)

// export writes the full record, secret keys included. The output is not
// sealed; keep it where the passphrase-protected file would be.
func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the record's CBOR encoding (hex to stdout, or raw to --out)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadRecord()
			if err != nil {
				return err
			}
			data, err := record.Encode(a)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
				return nil
			}
			return os.WriteFile(out, data, 0o600)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write the raw encoding to")
	return cmd
}
