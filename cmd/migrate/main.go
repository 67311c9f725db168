package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/tugohq/tugo/internal/config"
	"github.com/tugohq/tugo/internal/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	dir := flag.String("dir", "migrations", "Directory containing migration files")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	files, err := migrationFiles(*dir)
	if err != nil {
		logger.Fatalw("Failed to read migrations", "error", err)
	}
	if len(files) == 0 {
		logger.Fatalw("No migration files found", "dir", *dir)
	}

	if *dryRun {
		for _, file := range files {
			sql, err := os.ReadFile(file)
			if err != nil {
				logger.Fatalw("Failed to read migration", "file", file, "error", err)
			}
			fmt.Printf("-- %s\n%s\n", filepath.Base(file), sql)
		}
		return
	}

	dsn := cfg.Postgres.GetDSN()
	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			logger.Fatalw("Failed to read migration", "file", file, "error", err)
		}

		logger.Infow("Applying migration", "file", filepath.Base(file))
		if _, err := db.ExecContext(ctx, string(sql)); err != nil {
			logger.Fatalw("Failed to apply migration", "file", file, "error", err)
		}
	}

	logger.Info("Migrations completed successfully")
}

// migrationFiles returns the up migrations in lexical order. Files are
// idempotent so re-applying them is safe.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}
