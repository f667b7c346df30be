package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/i474232898/stormwind/internal/cache"
	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/weather"
	"github.com/i474232898/stormwind/internal/weather/providers"
)

// version is stamped at build time and tags cache entries.
var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, &http.Client{}))
}

// run executes one invocation and returns the process exit code. stdout
// receives exactly one JSON document on success; diagnostics go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, client *http.Client) int {
	logger := log.New(stderr, "", log.LstdFlags)

	flags := config.NewFlags("stormwind")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			flags.Usage(stdout)
			return 0
		}
		logger.Printf("ERROR: %v", err)
		flags.Usage(stderr)
		return 1
	}
	if flags.ShowVersion() {
		fmt.Fprintf(stdout, "stormwind %s\n", version)
		return 0
	}

	cfg, err := config.Resolve(flags)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		return 1
	}

	provider, err := providers.New(cfg, client)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		if errors.Is(err, config.ErrMissingSecret) {
			return 0
		}
		return 1
	}

	var fileCache weather.Cache
	if path, err := cache.DefaultPath(); err != nil {
		logger.Printf("WARN: cache disabled: %v", err)
	} else {
		fileCache = cache.New(path, version)
	}

	out, err := weather.NewService(provider, fileCache, logger).Render(ctx, cfg)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		return 1
	}

	if err := out.Write(stdout); err != nil {
		logger.Printf("ERROR: write output: %v", err)
		return 1
	}
	return 0
}
