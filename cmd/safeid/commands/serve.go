package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TheusHen/safeid/safeid"
	"github.com/TheusHen/safeid/safeid/store/memory"
)

func serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Store and serve records over QUIC",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = cfg.Listen
			}
			p := safeid.NewPeer(memory.New())
			if err := p.Listen(listen); err != nil {
				return err
			}
			defer p.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", p.ListenAddr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				_ = p.Close()
			}()

			err := p.Serve(ctx)
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "UDP address to listen on (default from config)")
	return cmd
}
