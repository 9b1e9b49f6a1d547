package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheusHen/safeid/safeid"
	"github.com/TheusHen/safeid/safeid/store/memory"
)

func publishCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Send the local record to a peer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadRecord()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd.Context())
			defer cancel()

			if err := safeid.NewPeer(memory.New()).Publish(ctx, to, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", a.Address())
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "peer address (host:port)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
