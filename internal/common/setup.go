package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"uptran-invest-go/internal/accounts"
	"uptran-invest-go/internal/api"
	"uptran-invest-go/internal/database"
	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/redisstore"
	"uptran-invest-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	Store      store.KVStore
	Backend    string
	Accounts   *accounts.Manager
	ApiService *api.AccountService
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// OpenStore connects the key-value backend selected by STORAGE_BACKEND
func OpenStore(ctx context.Context, cfg *models.Config) (store.KVStore, error) {
	switch cfg.Storage.Backend {
	case models.BackendSqlite, "":
		zap.L().Info("Opening sqlite store", zap.String("path", cfg.Database.Path))
		return database.NewService(ctx, cfg.Database)
	case models.BackendRedis:
		zap.L().Info("Opening redis store", zap.String("addr", cfg.Redis.Addr), zap.String("prefix", cfg.Redis.KeyPrefix))
		return redisstore.NewService(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	kv, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	managerCfg := accounts.Config{
		Store:      kv,
		SessionTTL: cfg.Accounts.SessionTTL,
	}

	if cfg.Accounts.SeedFile != "" {
		seed, err := LoadSeedFile(cfg.Accounts.SeedFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			zap.L().Info("Seed file not found, using built-in defaults", zap.String("seed_file", cfg.Accounts.SeedFile))
		case err != nil:
			kv.Close()
			return nil, err
		default:
			managerCfg.DefaultCatalog = seed.Catalog
			managerCfg.DefaultWallets = seed.Wallets
		}
	}

	if cfg.Accounts.SeedAdmin {
		managerCfg.Admin = &accounts.AdminSeed{
			Id:        cfg.Accounts.AdminId,
			FirstName: "Uptran",
			LastName:  "Admin",
			Email:     cfg.Accounts.AdminEmail,
			Password:  cfg.Accounts.AdminPassword,
		}
	}

	manager, err := accounts.NewManager(ctx, managerCfg)
	if err != nil {
		kv.Close()
		return nil, err
	}

	return &Services{
		Store:      kv,
		Backend:    cfg.Storage.Backend,
		Accounts:   manager,
		ApiService: api.NewAccountService(manager, kv),
	}, nil
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
