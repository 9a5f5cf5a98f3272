package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/gamehub/internal/config"
	"github.com/mcoot/gamehub/internal/dependencies/clock"
	"github.com/mcoot/gamehub/internal/dependencies/random"
	"github.com/mcoot/gamehub/internal/metrics"
	"github.com/mcoot/gamehub/internal/services/auth"
	"github.com/mcoot/gamehub/internal/services/hub"
	"github.com/mcoot/gamehub/internal/services/leaderboard"
	"github.com/mcoot/gamehub/internal/services/scoring"
	"github.com/mcoot/gamehub/internal/services/session"
	"github.com/mcoot/gamehub/internal/storage"
	filestorage "github.com/mcoot/gamehub/internal/storage/file"
	"github.com/mcoot/gamehub/internal/storage/memory"
	redisstorage "github.com/mcoot/gamehub/internal/storage/redis"
	"github.com/mcoot/gamehub/internal/storage/sqlite"
)

// Storage type names, shared with the server config
const (
	StorageTypeFile   = config.StorageFile
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
	StorageTypeSQLite = config.StorageSQLite
)

// App contains all wired application components
type App struct {
	// Storage
	Store   storage.Store
	Records *storage.Records

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	Metrics *metrics.Manager

	// Services
	ScoringService     *scoring.Service
	LeaderboardService *leaderboard.Service
	Hub                *hub.Service
	AuthService        *auth.Service
	SessionController  *session.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "file"
	StorageType string
	// FileConfig holds the data directory layout (optional for "file")
	FileConfig *filestorage.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// Metrics is the metrics manager (optional)
	Metrics *metrics.Manager
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.NewManager()
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg.SessionDuration = auth.DefaultConfig().SessionDuration
	}

	return newWithDependencies(store, clock.New(), random.New(), m, authCfg, logger), nil
}

func newStore(cfg Config) (storage.Store, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		fileCfg := filestorage.DefaultConfig()
		if cfg.FileConfig != nil {
			fileCfg = *cfg.FileConfig
		}
		return filestorage.New(fileCfg)
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlite.Open(cfg.SQLitePath)
	}
	return nil, errors.New("invalid StorageType: must be 'file', 'memory', 'redis' or 'sqlite'")
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Store,
	clk clock.Clock,
	rnd random.Random,
	m *metrics.Manager,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	records := storage.NewRecords(store, clk, logger)
	scoringService := scoring.New(records, m, logger)
	leaderboardService := leaderboard.New(records, m, logger)
	hubService := hub.New(records, scoringService, leaderboardService, m, logger)
	authService := auth.New(hubService, clk, logger, authCfg)
	sessionController := session.NewController(hubService, clk, rnd, m, logger)

	return &App{
		Store:              store,
		Records:            records,
		Clock:              clk,
		Random:             rnd,
		Metrics:            m,
		ScoringService:     scoringService,
		LeaderboardService: leaderboardService,
		Hub:                hubService,
		AuthService:        authService,
		SessionController:  sessionController,
	}
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}
