package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Places   PlacesConfig
	Cache    CacheConfig
	Search   SearchConfig
	Viewport ViewportConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PlacesConfig - настройки внешнего Places API. Пустой AccessToken
// отключает источник целиком.
type PlacesConfig struct {
	BaseURL        string
	AccessToken    string
	RequestTimeout int
}

type CacheConfig struct {
	PlacesCacheTTL time.Duration
}

// SearchConfig - радиусы поиска по источникам в километрах
type SearchConfig struct {
	DatasetRadiusKm float64
	NearbyRadiusKm  float64
	RemoteRadiusKm  float64
}

// ViewportConfig - настройки обработки событий камеры
type ViewportConfig struct {
	DebounceWindow time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Places: PlacesConfig{
			BaseURL:        viper.GetString("PLACES_BASE_URL"),
			AccessToken:    viper.GetString("PLACES_ACCESS_TOKEN"),
			RequestTimeout: viper.GetInt("PLACES_REQUEST_TIMEOUT"),
		},
		Cache: CacheConfig{
			PlacesCacheTTL: time.Duration(viper.GetInt("PLACES_CACHE_TTL")) * time.Second,
		},
		Search: SearchConfig{
			DatasetRadiusKm: viper.GetFloat64("SEARCH_DATASET_RADIUS_KM"),
			NearbyRadiusKm:  viper.GetFloat64("SEARCH_NEARBY_RADIUS_KM"),
			RemoteRadiusKm:  viper.GetFloat64("SEARCH_REMOTE_RADIUS_KM"),
		},
		Viewport: ViewportConfig{
			DebounceWindow: time.Duration(viper.GetInt("VIEWPORT_DEBOUNCE_MS")) * time.Millisecond,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Places.BaseURL == "" {
		cfg.Places.BaseURL = "https://places.example.com/api"
	}
	if cfg.Places.RequestTimeout == 0 {
		cfg.Places.RequestTimeout = 10
	}
	if cfg.Cache.PlacesCacheTTL == 0 {
		cfg.Cache.PlacesCacheTTL = 15 * time.Minute
	}
	if cfg.Search.DatasetRadiusKm == 0 {
		cfg.Search.DatasetRadiusKm = 5.0
	}
	if cfg.Search.NearbyRadiusKm == 0 {
		cfg.Search.NearbyRadiusKm = 2.0
	}
	if cfg.Search.RemoteRadiusKm == 0 {
		cfg.Search.RemoteRadiusKm = 2.0
	}
	if cfg.Viewport.DebounceWindow == 0 {
		cfg.Viewport.DebounceWindow = 120 * time.Millisecond
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "viewport-query-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
