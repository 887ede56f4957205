package app

import (
	"context"

	"github.com/avdosev/pagekv/cli"
)

var rootCmd = cli.Init("pagekv")

func MustExecute(ctx context.Context) {
	initRun()
	rootCmd.MustExecute(ctx)
}
