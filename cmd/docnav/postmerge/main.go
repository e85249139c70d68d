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
	if err := runPostMerge(os.Args[1:]); err != nil {
		log.Fatalf("docnav post-merge: %v", err)
	}
}

func runPostMerge(args []string) error {
	fs := flag.NewFlagSet("docnav-postmerge", flag.ExitOnError)
	configPath := fs.String("config", "", "Optional TOML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{ConfigPath: *configPath})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ran, err := module.Module.PostMerge(context.Background())
	if err != nil {
		return err
	}
	if ran {
		fmt.Fprintln(os.Stdout, "documentation changed, sidebar regenerated")
	}
	return nil
}
