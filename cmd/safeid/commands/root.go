package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheusHen/safeid/internal/config"
	"github.com/TheusHen/safeid/internal/logger"
	"github.com/TheusHen/safeid/safeid/keystore"
	"github.com/TheusHen/safeid/safeid/record"
)

const requestTimeout = 15 * time.Second

var (
	configPath string
	home       string
	passphrase string
	cfg        config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "safeid",
		Short:        "Self-certifying identity records",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if home != "" {
				loaded.Home = home
			}
			if err := os.MkdirAll(loaded.Home, 0o700); err != nil {
				return err
			}
			logger.Configure(loaded.Log.Level, loaded.Log.Format)
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.safeid)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the record")

	root.AddCommand(generateCmd(), showCmd(), exportCmd(), serveCmd(), publishCmd(), fetchCmd())
	return root
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}

func loadRecord() (record.AnMpid, error) {
	if err := requirePassphrase(); err != nil {
		return record.AnMpid{}, err
	}
	a, err := keystore.Load(cfg.RecordPath(), passphrase)
	if err != nil {
		return record.AnMpid{}, fmt.Errorf("load %s: %w", cfg.RecordPath(), err)
	}
	return a, nil
}

func requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, requestTimeout)
}
