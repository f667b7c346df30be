package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	httpapi "github.com/i474232898/stormwind/internal/api/http"
	"github.com/i474232898/stormwind/internal/cache"
	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/scheduler"
	"github.com/i474232898/stormwind/internal/store"
	"github.com/i474232898/stormwind/internal/weather"
	"github.com/i474232898/stormwind/internal/weather/providers"
)

var version = "dev"

const (
	storeMaxHistory = 144
	storeMaxAge     = 24 * time.Hour
	httpTimeout     = 10 * time.Second
)

// options holds the daemon-only flags.
type options struct {
	listen   string
	interval time.Duration
}

func parseFlags(args []string) (*config.Flags, options, error) {
	listen := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		listen = ":" + port
	}

	var opts options
	flags := config.NewFlags("stormwindd")
	fs := flags.FlagSet()
	fs.StringVar(&opts.listen, "listen", listen, "address the HTTP server listens on")
	fs.DurationVar(&opts.interval, "interval", scheduler.DefaultInterval, "refresh interval")

	if err := flags.Parse(args); err != nil {
		return flags, options{}, err
	}
	if opts.interval <= 0 {
		return nil, options{}, errors.New("--interval must be positive")
	}
	return flags, opts, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	flags, opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			flags.Usage(os.Stdout)
			return
		}
		log.Fatalf("ERROR: %v", err)
	}
	if flags.ShowVersion() {
		log.Printf("INFO: stormwindd %s", version)
		return
	}

	// Load configuration.
	cfg, err := config.Resolve(flags)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: httpTimeout,
	}

	provider, err := providers.New(cfg, httpClient)
	if err != nil {
		log.Fatalf("failed to create provider: %v", err)
	}

	var fileCache weather.Cache
	if path, err := cache.DefaultPath(); err != nil {
		log.Printf("WARN: cache disabled: %v", err)
	} else {
		fileCache = cache.New(path, version)
	}

	// In-memory history of rendered outputs.
	memStore := store.NewMemoryStore(storeMaxHistory, storeMaxAge)

	service := weather.NewService(provider, fileCache, nil).WithStore(memStore)

	// Scheduler that periodically renders and stores the output.
	sched := scheduler.New(cfg, opts.interval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "stormwindd",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "stormwindd",
			"provider": provider.Name(),
			"version":  version,
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, weather.LocationOf(cfg))

	go func() {
		log.Printf("INFO: listening on %s", opts.listen)
		if err := app.Listen(opts.listen); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
