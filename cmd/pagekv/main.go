package main

import (
	"context"

	"github.com/avdosev/pagekv/cmd/pagekv/app"
)

func main() {
	app.MustExecute(context.Background())
}
