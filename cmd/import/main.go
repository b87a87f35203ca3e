package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	service "github.com/okian/crease/internal/app"
	"github.com/okian/crease/internal/config"
	"github.com/okian/crease/internal/ingest"
	"github.com/okian/crease/pkg/logger"
)

const (
	defaultFixtures  = 10
	defaultOvers     = 20
	defaultBatchSize = 1000
	importTimeout    = 10 * time.Minute
)

func main() {
	var (
		file      = flag.String("file", "", "CSV export to import")
		generate  = flag.Bool("generate", false, "Generate synthetic deliveries instead of reading a file")
		fixtures  = flag.Int("fixtures", defaultFixtures, "Fixtures to generate")
		overs     = flag.Int("overs", defaultOvers, "Overs per generated fixture")
		seed      = flag.Uint64("seed", 0, "Seed for reproducible generation (0 = random)")
		output    = flag.String("output", "", "Also write the imported rows to this CSV file")
		batchSize = flag.Int("batch", defaultBatchSize, "Rows per insert transaction")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || (*file == "" && !*generate) {
		ingest.ShowHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, importTimeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	log := logger.Named("import")

	svc := service.New(
		service.WithLogger(log),
		service.WithStoreDSN(cfg.StoreDriver, cfg.StoreDSN),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}

	genOpts := []ingest.GeneratorOption{ingest.WithFixtures(*fixtures), ingest.WithOvers(*overs)}
	if *seed != 0 {
		genOpts = append(genOpts, ingest.WithSeed(*seed))
	}

	_, err = ingest.Run(ctx, ingest.Config{
		File:       *file,
		Generate:   *generate,
		OutputFile: *output,
		BatchSize:  *batchSize,
		Generator:  genOpts,
	}, svc)
	svc.Stop()
	if err != nil {
		log.Error(ctx, "import failed", logger.Error(err))
		os.Exit(1)
	}
}
