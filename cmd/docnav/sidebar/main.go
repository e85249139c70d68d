package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docnav/cmd/docnav/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSidebar(os.Args[1:]); err != nil {
		log.Fatalf("docnav sidebar: %v", err)
	}
}

func runSidebar(args []string) error {
	fs := flag.NewFlagSet("docnav-sidebar", flag.ExitOnError)
	configPath := fs.String("config", "", "Optional TOML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{ConfigPath: *configPath})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	if err := module.Module.GenerateSidebar(context.Background()); err != nil {
		return fmt.Errorf("generate sidebar: %w", err)
	}
	if err := module.Module.FlushMetrics(); err != nil {
		return fmt.Errorf("flush metrics: %w", err)
	}
	fmt.Fprintf(os.Stdout, "sidebar written to %s\n", module.Config.Output.Path)
	return nil
}
