package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheusHen/safeid/safeid"
	"github.com/TheusHen/safeid/safeid/name"
	"github.com/TheusHen/safeid/safeid/store/memory"
)

func fetchCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "fetch <name>",
		Short: "Fetch a record from a peer by name (hex or base58)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseName(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd.Context())
			defer cancel()

			entry, err := safeid.NewPeer(memory.New()).Fetch(ctx, from, n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Type:    %d\n", entry.TypeTag)
			fmt.Fprintf(out, "Address: %s\n", entry.Name)
			if entry.HasOwner {
				fmt.Fprintf(out, "Owner:   %s\n", entry.Owner)
			}
			fmt.Fprintf(out, "Size:    %d bytes\n", len(entry.Payload))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "peer address (host:port)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func parseName(s string) (name.Name, error) {
	if len(s) == 2*name.Size {
		if n, err := name.ParseHex(s); err == nil {
			return n, nil
		}
	}
	return name.ParseBase58(s)
}
