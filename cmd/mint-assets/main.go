package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hashgraph-online/collection-kit-go/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Main(ctx, cli.NewMintAssetsCommand(cli.NewApp()), os.Args[1:])
	stop()
	os.Exit(code)
}
