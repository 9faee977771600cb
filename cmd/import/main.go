package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/truestate/retail-sales-api/internal/config"
	"github.com/truestate/retail-sales-api/internal/database"
	"github.com/truestate/retail-sales-api/internal/importer"
	"github.com/truestate/retail-sales-api/internal/repository"
)

// main is the entrypoint for the offline CSV importer. Exit code 0 means the
// stream was fully consumed; a non-zero exit is reserved for fatal
// preconditions (missing file, unreachable database).
func main() {
	// 1. Load config
	cfg, err := config.LoadImport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Info().Str("csv", cfg.Import.CSVPath).Int("batch_size", cfg.Import.BatchSize).Msg("starting sales import")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations so the sparse unique index exists before inserting.
	if err := database.Migrate(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}

	// 4. Stream the CSV into the sales table.
	saleRepo := repository.NewSaleRepository(db)
	imp := importer.New(saleRepo, cfg.Import.BatchSize)

	stats, err := imp.Run(context.Background(), cfg.Import.CSVPath)
	if err != nil {
		log.Error().Err(err).Msg("fatal import error")
		os.Exit(1)
	}

	log.Info().
		Int("rows_processed", stats.RowsRead).
		Int("batches_flushed", stats.Batches).
		Int("records_inserted", stats.Inserted).
		Int("records_failed", stats.Failed).
		Msg("Done")
}
