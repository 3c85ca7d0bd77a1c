package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/assetlab-xyz/go-assetledger/api"
	"github.com/assetlab-xyz/go-assetledger/eventlog"
	"github.com/assetlab-xyz/go-assetledger/eventstore"
	"github.com/assetlab-xyz/go-assetledger/ledger"
)

// teeSink fans a ledger event out to several sinks.
type teeSink []ledger.EventSink

func (t teeSink) Append(ev ledger.Event) {
	for _, s := range t {
		s.Append(ev)
	}
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", ":8080", "Listen address")
	dbPath := fs.String("db", "", "SQLite event store path (default ASSETLEDGER_DB; empty for in-memory)")
	admin := fs.String("admin", "", "Registry admin address (required)")
	stream := fs.String("stream", "ledger-main", "Event stream name")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: assetledger serve [options]

Run the ledger HTTP API. Activity is persisted to the event store and
replayed into the activity log on startup.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *admin == "" {
		fs.Usage()
		return fmt.Errorf("admin address required")
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := context.Background()

	path := *dbPath
	if path == "" {
		path = os.Getenv("ASSETLEDGER_DB")
	}
	var store eventstore.Store
	var err error
	if path == "" {
		store = eventstore.NewMemoryStore()
		logger.Warn().Msg("no --db given, activity will not survive restarts")
	} else {
		store, err = eventstore.NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("open event store: %w", err)
		}
	}
	defer store.Close()

	// Restore the activity log from the persisted stream.
	feed := eventlog.New()
	replayed, err := eventstore.Replay(ctx, store, *stream)
	if err != nil {
		return fmt.Errorf("replay stream %q: %w", *stream, err)
	}
	for _, ev := range replayed {
		feed.Append(ev)
	}
	if len(replayed) > 0 {
		logger.Info().Int("events", len(replayed)).Str("stream", *stream).Msg("restored activity")
	}

	recorder, err := eventstore.NewRecorder(ctx, store, *stream, logger)
	if err != nil {
		return fmt.Errorf("attach recorder: %w", err)
	}
	sink := teeSink{feed, recorder}

	registry := ledger.NewRegistry(ledger.Address(*admin), ledger.WithRegistryEvents(sink))
	token := ledger.NewToken(registry, ledger.WithTokenEvents(sink))
	nft := ledger.NewNFT(ledger.WithNFTRegistry(registry), ledger.WithNFTEvents(sink))

	srv := api.NewServer(
		api.WithLedger(registry, token, nft),
		api.WithFeed(feed),
		api.WithLogger(logger),
	)

	logger.Info().Str("listen", *listen).Str("admin", *admin).Msg("serving ledger API")
	return http.ListenAndServe(*listen, srv.Handler())
}
