package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisStatsDB  int    `mapstructure:"REDIS_STATS_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Identity provider.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Comma-separated identity-provider subject ids allowed to call
	// stats/admin endpoints.
	AdminUIDs string `mapstructure:"ADMIN_UIDS"`

	// Session cookie scope and test-traffic classification.
	CookieDomain   string `mapstructure:"COOKIE_DOMAIN"`
	TestHostMarker string `mapstructure:"TEST_HOST_MARKER"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Funnel statistics.
	StatsCacheTTLSeconds  int    `mapstructure:"STATS_CACHE_TTL_SECONDS"`
	StatsSnapshotCronspec string `mapstructure:"STATS_SNAPSHOT_CRONSPEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "may")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 0)
	viper.SetDefault("REDIS_STATS_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "./config/serviceAccountKey.json")
	viper.SetDefault("ADMIN_UIDS", "")
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("TEST_HOST_MARKER", "test.")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STATS_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("STATS_SNAPSHOT_CRONSPEC", "5 0 * * *")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AdminUIDSet parses the configured allow-list into a lookup set.
func AdminUIDSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, uid := range strings.Split(AppConfig.AdminUIDs, ",") {
		uid = strings.TrimSpace(uid)
		if uid != "" {
			set[uid] = struct{}{}
		}
	}
	return set
}

// AllowedOriginList parses the configured CORS origins. Credentialed CORS
// cannot use a wildcard, so origins must be enumerated.
func AllowedOriginList() []string {
	var origins []string
	for _, o := range strings.Split(AppConfig.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
