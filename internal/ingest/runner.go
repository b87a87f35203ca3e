// Package ingest loads ball-by-ball deliveries into the store, either from a
// CSV export or from the synthetic generator.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/pkg/logger"
)

const directoryPermission = 0750

// Importer persists deliveries. The page composer service satisfies it.
type Importer interface {
	Import(ctx context.Context, deliveries []model.Delivery) (int, error)
}

// Config selects the source and the optional CSV copy of what was imported.
type Config struct {
	File       string // CSV input; empty means generate
	Generate   bool
	OutputFile string // write the imported rows as CSV
	BatchSize  int
	Generator  []GeneratorOption
}

// Stats summarises an import run.
type Stats struct {
	Read     int
	Imported int
	Batters  int
	Skipped  int // rows without a shot angle
	Duration time.Duration
}

// Run reads or generates deliveries and hands them to imp in batches.
func Run(ctx context.Context, cfg Config, imp Importer) (Stats, error) {
	start := time.Now()
	var stats Stats

	deliveries, err := load(ctx, cfg)
	if err != nil {
		return stats, err
	}
	stats.Read = len(deliveries)

	batters := make(map[string]struct{})
	for i := range deliveries {
		batters[deliveries[i].Batter] = struct{}{}
		if !deliveries[i].HasShotAngle() {
			stats.Skipped++
		}
	}
	stats.Batters = len(batters)

	if cfg.OutputFile != "" {
		if err := saveCSV(ctx, cfg.OutputFile, deliveries); err != nil {
			logger.Get().Warn(ctx, "failed to save deliveries to file", logger.Error(err))
		}
	}

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = len(deliveries)
	}
	for lo := 0; lo < len(deliveries); lo += batch {
		hi := min(lo+batch, len(deliveries))
		n, err := imp.Import(ctx, deliveries[lo:hi])
		stats.Imported += n
		if err != nil {
			return stats, fmt.Errorf("import rows %d-%d: %w", lo, hi, err)
		}
	}

	stats.Duration = time.Since(start)
	logger.Get().Info(ctx, "import finished",
		logger.Int("read", stats.Read),
		logger.Int("imported", stats.Imported),
		logger.Int("batters", stats.Batters),
		logger.Int("withoutShotAngle", stats.Skipped),
		logger.Duration("duration", stats.Duration))
	return stats, nil
}

func load(ctx context.Context, cfg Config) ([]model.Delivery, error) {
	switch {
	case cfg.File != "":
		f, err := os.Open(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
			}
		}()
		logger.Get().Info(ctx, "reading deliveries", logger.String("file", cfg.File))
		return ReadCSV(f)
	case cfg.Generate:
		return NewGenerator(cfg.Generator...).Generate(ctx)
	default:
		return nil, ErrNoSource
	}
}

func saveCSV(ctx context.Context, filename string, deliveries []model.Delivery) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteCSV(file, deliveries); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	logger.Get().Info(ctx, "deliveries saved to file", logger.String("filename", filename))
	return nil
}

// ShowHelp prints usage information for the import tool.
func ShowHelp() {
	os.Stdout.WriteString(`crease import
=============

Loads ball-by-ball deliveries into the wagon wheel store.

Usage:
  go run ./cmd/import [options]

Options:
  -file string
        CSV export to import (header row required)
  -generate
        Generate synthetic deliveries instead of reading a file
  -fixtures int
        Fixtures to generate (default 10)
  -overs int
        Overs per generated fixture (default 20)
  -seed uint
        Seed for reproducible generation (default random)
  -output string
        Also write the imported rows to this CSV file
  -batch int
        Rows per insert transaction (default 1000)

The store driver and DSN come from the same configuration as the server
(CREASE_CONFIG, CREASE_STORE_DRIVER, CREASE_STORE_DSN).

Examples:
  go run ./cmd/import -file deliveries.csv
  go run ./cmd/import -generate -fixtures 50 -output sample.csv
`)
}
