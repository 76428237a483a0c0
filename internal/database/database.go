// Package database owns the document store connection.
//
// The store is an embedded badger database holding one JSON document per
// record under type-prefixed keys. This package opens it, verifies it,
// runs its value-log garbage collector in the background, and owns its
// shutdown; querying lives in the repository layer.
package database

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog"

	"github.com/deppfellow/fitlog/internal/config"
)

// Database wraps the badger handle together with its GC loop.
type Database struct {
	DB *badger.DB

	logger *zerolog.Logger
	stopGC chan struct{}
	gcDone chan struct{}
}

// New opens the document store described by the config.
//
// On-disk stores get a background value-log GC loop; in-memory stores
// (tests) have nothing to collect and skip it.
func New(cfg *config.Config, log *zerolog.Logger) (*Database, error) {
	var opts badger.Options
	if cfg.Database.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Database.Path)
	}
	// badger's own logger is noisy; all relevant events are logged here.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}

	d := &Database{
		DB:     db,
		logger: log,
		stopGC: make(chan struct{}),
		gcDone: make(chan struct{}),
	}

	if cfg.Database.InMemory {
		close(d.gcDone)
	} else {
		go d.runGC(time.Duration(cfg.Database.GCInterval) * time.Second)
	}

	log.Info().
		Str("path", cfg.Database.Path).
		Bool("in_memory", cfg.Database.InMemory).
		Msg("document store opened")

	return d, nil
}

// runGC periodically reclaims value-log space. badger returns
// ErrNoRewrite when there was nothing to collect; that is not a failure.
func (d *Database) runGC(interval time.Duration) {
	defer close(d.gcDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopGC:
			return
		case <-ticker.C:
			err := d.DB.RunValueLogGC(0.5)
			switch {
			case err == nil:
				d.logger.Debug().Msg("value log GC reclaimed space")
			case err == badger.ErrNoRewrite:
				// nothing to collect
			default:
				d.logger.Error().Err(err).Msg("value log GC failed")
			}
		}
	}
}

// Ping verifies the store is open and readable.
func (d *Database) Ping() error {
	if d.DB.IsClosed() {
		return fmt.Errorf("document store is closed")
	}
	return d.DB.View(func(txn *badger.Txn) error { return nil })
}

// Close stops the GC loop and closes the store.
func (d *Database) Close() error {
	close(d.stopGC)
	<-d.gcDone
	return d.DB.Close()
}
