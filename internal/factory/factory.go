package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/cluequest/cluequest-go/internal/dependencies/clock"
	"github.com/cluequest/cluequest-go/internal/dependencies/random"
	"github.com/cluequest/cluequest-go/internal/dependencies/textgen"
	"github.com/cluequest/cluequest-go/internal/services/account"
	"github.com/cluequest/cluequest-go/internal/services/game"
	"github.com/cluequest/cluequest-go/internal/services/generator"
	"github.com/cluequest/cluequest-go/internal/storage"
	"github.com/cluequest/cluequest-go/internal/storage/memory"
	redisstorage "github.com/cluequest/cluequest-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Generator textgen.Generator

	// Services
	AccountService   *account.Service
	GeneratorService *generator.Service
	GameController   *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Generator produces scenario text (required); typically an llm.Client
	Generator textgen.Generator
	// AccountConfig holds configuration for the account service (optional)
	// If zero value, defaults to account.DefaultConfig()
	AccountConfig account.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.Generator == nil {
		return nil, errors.New("Generator is required")
	}

	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default account config if not provided
	accountCfg := cfg.AccountConfig
	if accountCfg.SessionDuration == 0 {
		accountCfg = account.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, cfg.Generator, accountCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	gen textgen.Generator,
	accountCfg account.Config,
	logger *slog.Logger,
) *App {
	// Create services
	accountService := account.New(store, clk, rnd, accountCfg, logger)
	generatorService := generator.New(gen, logger)
	gameController := game.NewController(accountService, generatorService, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		Generator:        gen,
		AccountService:   accountService,
		GeneratorService: generatorService,
		GameController:   gameController,
	}
}
