// Command feedwatch tails the public order feed from the terminal. It is a
// thin consumer of the state layer: it builds the store container exactly
// the way a UI would, fetches the catalog once, and then either streams
// feed snapshots over the websocket or polls the HTTP endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stellarburgers/orderclient/client"
	"github.com/stellarburgers/orderclient/credentials"
	"github.com/stellarburgers/orderclient/internal/config"
	"github.com/stellarburgers/orderclient/pkg/logger"
	"github.com/stellarburgers/orderclient/state"
)

func main() {
	configPath := flag.String("config", "", "YAML config file; environment used when empty")
	interval := flag.Duration("interval", 15*time.Second, "poll interval when no websocket URL is configured")
	flag.Parse()

	if err := run(*configPath, *interval); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, interval time.Duration) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	log := logger.New(os.Stderr, "feedwatch", cfg.LogLevel)

	var durable credentials.DurableStore
	if cfg.CredentialsFile != "" {
		durable, err = credentials.NewFileDurable(cfg.CredentialsFile)
		if err != nil {
			return err
		}
	} else {
		durable = credentials.NewMemoryDurable()
	}
	creds := credentials.NewKeeper(credentials.NewMemoryCookies(), durable)

	gw, err := client.New(client.Config{
		BaseURL:     cfg.BaseURL,
		HTTPClient:  &http.Client{Timeout: cfg.HTTPTimeout},
		Credentials: creds,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	stores := state.New(gw, creds, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := stores.Catalog.Fetch(ctx); err != nil {
		log.WithError(err).Warn("catalog unavailable, continuing with feed only")
	} else {
		for typ, items := range stores.Catalog.ByType() {
			log.WithField("type", typ).WithField("count", len(items)).Info("catalog loaded")
		}
	}

	if cfg.FeedSocketURL != "" {
		return watchSocket(ctx, cfg.FeedSocketURL, stores, log)
	}
	return pollFeed(ctx, stores, interval)
}

func watchSocket(ctx context.Context, wsURL string, stores *state.Container, log *logger.Logger) error {
	socket := client.NewFeedSocket(wsURL, func(data client.FeedData) {
		stores.Feed.ApplyFeedEvent(data)
		printFeed(stores)
	}, log)

	if err := socket.Connect(ctx); err != nil {
		return err
	}
	defer socket.Close()

	<-ctx.Done()
	return nil
}

func pollFeed(ctx context.Context, stores *state.Container, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := stores.Feed.FetchFeed(ctx); err == nil {
			printFeed(stores)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func printFeed(stores *state.Container) {
	sn := stores.Feed.Snapshot()
	fmt.Printf("orders: %d today: %d ready: %v pending: %v\n",
		sn.Total, sn.TotalToday, sn.ReadyNumbers(10), sn.PendingNumbers(10))
}
