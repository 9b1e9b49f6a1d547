package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the record's address and correlation name",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadRecord()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Type:        %d\n", a.TypeTag())
			fmt.Fprintf(out, "Address:     %s\n", a.Address())
			fmt.Fprintf(out, "Base58:      %s\n", a.Address().Base58())
			fmt.Fprintf(out, "Correlation: %s\n", a.CorrelationName())
			return nil
		},
	}
}
