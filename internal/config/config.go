package config

import (
	"slices"
	"time"
)

// Storage drivers accepted by StorageConfig.Driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
)

// Drivers lists every supported storage driver.
var Drivers = []string{DriverMemory, DriverFile, DriverSQLite, DriverPostgres, DriverRedis, DriverMongo}

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
	CORS    CORSConfig    `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects and configures the key-value backend holding the collection.
type StorageConfig struct {
	Driver   string         `yaml:"driver"   env:"STORAGE_DRIVER" env-default:"file"`
	File     FileConfig     `yaml:"file"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Mongo    MongoConfig    `yaml:"mongo"`
}

// FileConfig holds settings for the file backend.
type FileConfig struct {
	Dir string `yaml:"dir" env:"STORAGE_FILE_DIR" env-default:"./data"`
}

// SQLiteConfig holds settings for the embedded SQLite backend.
type SQLiteConfig struct {
	Path    string `yaml:"path"     env:"STORAGE_SQLITE_PATH"     env-default:"./data/journal.db"`
	LogMode bool   `yaml:"log_mode" env:"STORAGE_SQLITE_LOG_MODE" env-default:"false"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"                env:"STORAGE_POSTGRES_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"STORAGE_POSTGRES_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"STORAGE_POSTGRES_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"STORAGE_POSTGRES_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"STORAGE_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"STORAGE_POSTGRES_AUTO_MIGRATE"       env-default:"true"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string        `yaml:"url"           env:"STORAGE_REDIS_URL"`
	KeyPrefix    string        `yaml:"key_prefix"    env:"STORAGE_REDIS_KEY_PREFIX"    env-default:"journal:"`
	PoolSize     int           `yaml:"pool_size"     env:"STORAGE_REDIS_POOL_SIZE"     env-default:"10"`
	DialTimeout  time.Duration `yaml:"dial_timeout"  env:"STORAGE_REDIS_DIAL_TIMEOUT"  env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"STORAGE_REDIS_READ_TIMEOUT"  env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"STORAGE_REDIS_WRITE_TIMEOUT" env-default:"3s"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI            string        `yaml:"uri"             env:"STORAGE_MONGO_URI"`
	Database       string        `yaml:"database"        env:"STORAGE_MONGO_DATABASE"        env-default:"journal"`
	Collection     string        `yaml:"collection"      env:"STORAGE_MONGO_COLLECTION"      env-default:"kv_blobs"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"STORAGE_MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// JournalConfig holds entry store settings.
type JournalConfig struct {
	StorageKey         string `yaml:"storage_key"          env:"JOURNAL_STORAGE_KEY"          env-default:"mini-memory-journal-entries"`
	DefaultTitle       string `yaml:"default_title"        env:"JOURNAL_DEFAULT_TITLE"        env-default:"Untitled Entry"`
	DefaultMood        string `yaml:"default_mood"         env:"JOURNAL_DEFAULT_MOOD"         env-default:"😊"`
	Locale             string `yaml:"locale"               env:"JOURNAL_LOCALE"               env-default:"en"`
	Timezone           string `yaml:"timezone"             env:"JOURNAL_TIMEZONE"             env-default:"Local"`
	MaxConflictRetries int    `yaml:"max_conflict_retries" env:"JOURNAL_MAX_CONFLICT_RETRIES" env-default:"3"`
	MaxImportBytes     int64  `yaml:"max_import_bytes"     env:"JOURNAL_MAX_IMPORT_BYTES"     env-default:"52428800"`
	ImportFillDefaults bool   `yaml:"import_fill_defaults" env:"JOURNAL_IMPORT_FILL_DEFAULTS" env-default:"false"`
	MaxTitleLength     int    `yaml:"max_title_length"     env:"JOURNAL_MAX_TITLE_LENGTH"     env-default:"200"`
	MaxMoodLength      int    `yaml:"max_mood_length"      env:"JOURNAL_MAX_MOOD_LENGTH"      env-default:"32"`
	MaxStickers        int    `yaml:"max_stickers"         env:"JOURNAL_MAX_STICKERS"         env-default:"100"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// IsKnownDriver reports whether name is a supported storage driver.
func IsKnownDriver(name string) bool {
	return slices.Contains(Drivers, name)
}
