package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-docnav/cmd/docnav/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runWatch(ctx, os.Args[1:]); err != nil {
		log.Fatalf("docnav watch: %v", err)
	}
}

func runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docnav-watch", flag.ExitOnError)
	configPath := fs.String("config", "", "Optional TOML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{ConfigPath: *configPath})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	module.Logger.Info("cli.watch.started", "root", module.Config.Content.Root)
	if err := module.Module.Watch(ctx); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
