package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/NOTIVEAPP/notive-backend/internal/config"
	"github.com/NOTIVEAPP/notive-backend/internal/database"
	"github.com/NOTIVEAPP/notive-backend/internal/router"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	for _, dir := range []string{filepath.Dir(cfg.Log.File), cfg.Backup.Dir} {
		if err := ensureDir(dir); err != nil {
			log.Fatalf("create dir %s: %v", dir, err)
		}
	}

	logger, err := util.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Auth.APIKey == "" {
		logger.Warn("auth.api_key is empty; every keyed request will be rejected")
	}
	if cfg.Auth.SessionSecret == "" {
		logger.Fatal("auth.session_secret must be set")
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	r := router.SetupRouter(cfg, db, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Error("run server", zap.Error(err))
		os.Exit(1)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
