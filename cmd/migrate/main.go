// Command migrate copies the users and recipes of a file store into the SQL
// store selected by STORE_DRIVER, creating its tables first.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/recipe-nexus/backend/config"
	"github.com/pageza/recipe-nexus/backend/internal/database"
	"github.com/pageza/recipe-nexus/backend/internal/logger"
	"github.com/pageza/recipe-nexus/backend/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	from := flag.String("from", "", "file store directory to import (defaults to DATA_DIR)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StoreDriver == config.StoreFile {
		log.Fatal("STORE_DRIVER must be sqlite or postgres to migrate")
	}
	if *from == "" {
		*from = cfg.DataDir
	}

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Development: true})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.Open(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	dst, err := store.NewGormStore(db)
	if err != nil {
		zlog.Fatal("failed to migrate schema", zap.Error(err))
	}
	defer dst.Close()

	src, err := store.NewFileStore(*from)
	if err != nil {
		zlog.Fatal("failed to open file store", zap.Error(err))
	}

	users, recipes, err := store.Copy(context.Background(), src, dst)
	if err != nil {
		zlog.Fatal("import failed", zap.Error(err))
	}
	zlog.Info("import complete",
		zap.String("from", *from),
		zap.Int("users", users),
		zap.Int("recipes", recipes),
	)
}
