package app

import (
	"github.com/spf13/cobra"

	"github.com/avdosev/pagekv/app"
)

func initRun() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Boots the buffer pool and trie store and serves the stdin control surface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := rootCmd.Options
			return app.Run(cmd.Context(), &app.PageKVEntrypoint{
				ConfigPath: opts.ConfigPath,
				PoolSize:   opts.PoolSize,
				ReplacerK:  opts.ReplacerK,
				DataDir:    opts.DataDir,
			})
		},
	})
}
