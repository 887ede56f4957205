package cli

func (c *RootCommand) initFlags() {
	c.PersistentFlags().StringVarP(
		&c.Options.ConfigPath,
		"config",
		"c",
		"",
		"Path to the .env configuration file",
	)
	c.PersistentFlags().IntVar(
		&c.Options.PoolSize,
		"pool-size",
		0,
		"Override the buffer pool's frame count (0 defers to config)",
	)
	c.PersistentFlags().IntVar(
		&c.Options.ReplacerK,
		"replacer-k",
		0,
		"Override the LRU-K replacer's history depth (0 defers to config)",
	)
	c.PersistentFlags().StringVar(
		&c.Options.DataDir,
		"data-dir",
		"",
		"Override the data directory (empty defers to config)",
	)
}
