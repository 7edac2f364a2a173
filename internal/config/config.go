package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"HTTP_SERVER_PORT"` name the environment variable,
// `default:""` supplies a fallback and `required:"true"` makes it mandatory.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Postgres   PostgresConfig
	Catalog    CatalogConfig
	Search     SearchConfig
	Community  CommunityConfig
	SiteURL    string `envconfig:"SITE_URL" default:"https://thriftzone.in"`
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// PostgresConfig holds PostgreSQL connection details for the wishlist store.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" required:"true"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName   string `envconfig:"POSTGRES_DBNAME" required:"true"`
}

// CatalogConfig controls where products.json comes from and how often the
// in-memory copy is refreshed.
type CatalogConfig struct {
	Source          string        `envconfig:"CATALOG_SOURCE" default:"data/products.json"`
	RefreshInterval time.Duration `envconfig:"CATALOG_REFRESH_INTERVAL" default:"5m"`
	FetchTimeout    time.Duration `envconfig:"CATALOG_FETCH_TIMEOUT" default:"10s"`
}

// SearchConfig tunes the search engine. Defaults mirror the production
// site behavior: 12 results per page, 5 minute result cache, 6
// suggestions after a 300ms typing pause.
type SearchConfig struct {
	PageSize        int           `envconfig:"SEARCH_PAGE_SIZE" default:"12"`
	CacheTTL        time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"5m"`
	CacheMaxEntries int           `envconfig:"SEARCH_CACHE_MAX_ENTRIES" default:"256"`
	SuggestLimit    int           `envconfig:"SEARCH_SUGGEST_LIMIT" default:"6"`
	SuggestMinLen   int           `envconfig:"SEARCH_SUGGEST_MIN_LEN" default:"2"`
	DebounceDelay   time.Duration `envconfig:"SEARCH_DEBOUNCE_DELAY" default:"300ms"`
}

// CommunityConfig holds settings for the embedded community board database.
type CommunityConfig struct {
	DBPath string `envconfig:"COMMUNITY_DB_PATH" default:"community.db"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

var cfg Config

// Load initializes the configuration from environment variables.
// It should be called once during application startup.
func Load() (*Config, error) {
	log.Println("Loading service configuration...")
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	log.Printf("Configuration loaded successfully for APP_ENV: %s", cfg.AppEnv)
	return &cfg, nil
}
