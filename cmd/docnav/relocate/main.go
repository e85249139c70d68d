package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docnav"
	"github.com/goliatone/go-docnav/cmd/docnav/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runRelocate(os.Args[1:]); err != nil {
		log.Fatalf("docnav relocate: %v", err)
	}
}

func runRelocate(args []string) error {
	fs := flag.NewFlagSet("docnav-relocate", flag.ExitOnError)
	configPath := fs.String("config", "", "Optional TOML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{ConfigPath: *configPath})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	result, err := module.Module.Relocate(context.Background(), docnav.RelocateOptions{})
	if err != nil {
		return fmt.Errorf("relocate: %w", err)
	}
	if err := module.Module.FlushMetrics(); err != nil {
		return fmt.Errorf("flush metrics: %w", err)
	}

	for _, moved := range result.Moved {
		fmt.Fprintf(os.Stdout, "moved %s -> %s\n", moved.Source, moved.Destination)
	}
	for _, failed := range result.Failed {
		fmt.Fprintf(os.Stdout, "failed %s: %v\n", failed.Path, failed.Err)
	}
	fmt.Fprintf(os.Stdout, "relocated %d documents, %d images, %d failed\n", len(result.Moved), len(result.Assets), len(result.Failed))
	return nil
}
