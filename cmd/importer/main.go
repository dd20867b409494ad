package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"moveasy-api/internal/config"
	"moveasy-api/internal/models"
	"moveasy-api/internal/repository"
	"moveasy-api/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// fileList collects -file flags; each value may itself be a comma separated list.
type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*f = append(*f, p)
		}
	}
	return nil
}

func main() {
	var files fileList
	flag.Var(&files, "file", "GeoJSON file to import (repeatable or comma separated)")
	fileType := flag.String("type", "", `area file format: "nta", "nj" or empty to detect per file`)
	truncate := flag.Bool("truncate", true, "remove existing areas before importing")
	refreshCounts := flag.Bool("refresh-counts", false, "recompute areas.total_buildings after importing")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(files) == 0 && !*refreshCounts {
		fmt.Fprintln(os.Stderr, "Error: --file or --refresh-counts is required")
		flag.Usage()
		os.Exit(1)
	}

	areas, err := parseFiles(files, *fileType)
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing area files")
	}
	log.Info().Int("areas", len(areas)).Int("files", len(files)).Msg("parsed area files")

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	ctx := context.Background()

	// Connect to DB
	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)

	if len(areas) > 0 {
		n, err := repo.ReplaceAreas(ctx, areas, *truncate)
		if err != nil {
			log.Fatal().Err(err).Msg("error inserting areas")
		}
		if err := verifyImport(ctx, repo, n, *truncate); err != nil {
			log.Fatal().Err(err).Msg("error verifying import")
		}
		log.Info().Int64("areas", n).Bool("truncated", *truncate).Msg("successfully imported areas")
	}

	if *refreshCounts {
		n, err := repo.RefreshBuildingCounts(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("error refreshing building counts")
		}
		log.Info().Int64("areas", n).Msg("refreshed building counts")
	}
}

func parseFiles(paths []string, fileType string) ([]models.NewArea, error) {
	var all []models.NewArea
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		areas, err := service.ParseAreas(data, fileType)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		log.Info().Str("path", path).Int("areas", len(areas)).Msg("loaded area file")
		all = append(all, areas...)
	}
	return all, nil
}

func verifyImport(ctx context.Context, repo *repository.Repository, inserted int64, truncated bool) error {
	count, err := repo.CountAreas(ctx)
	if err != nil {
		return fmt.Errorf("failed to count areas: %w", err)
	}

	if truncated && count != inserted {
		return fmt.Errorf("area count mismatch: expected %d, got %d", inserted, count)
	}
	if count < inserted {
		return fmt.Errorf("area count mismatch: expected at least %d, got %d", inserted, count)
	}
	return nil
}
