package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"exsolver/internal/cli"
	"exsolver/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(config.Load()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "exsolver:", err)
		os.Exit(1)
	}
}
