package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Journal.validate(); err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))

	switch s.Driver {
	case DriverMemory:
	case DriverFile:
		if s.File.Dir == "" {
			return fmt.Errorf("file.dir is required for driver %q", s.Driver)
		}
	case DriverSQLite:
		if s.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path is required for driver %q", s.Driver)
		}
	case DriverPostgres:
		if s.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for driver %q", s.Driver)
		}
		if s.Postgres.MaxConns < s.Postgres.MinConns {
			return fmt.Errorf("postgres.max_conns (%d) must be >= min_conns (%d)", s.Postgres.MaxConns, s.Postgres.MinConns)
		}
	case DriverRedis:
		if s.Redis.URL == "" {
			return fmt.Errorf("redis.url is required for driver %q", s.Driver)
		}
	case DriverMongo:
		if s.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required for driver %q", s.Driver)
		}
		if s.Mongo.Database == "" || s.Mongo.Collection == "" {
			return fmt.Errorf("mongo.database and mongo.collection are required")
		}
	default:
		return fmt.Errorf("unknown driver %q (allowed: %s)", s.Driver, strings.Join(Drivers, ", "))
	}

	return nil
}

func (j *JournalConfig) validate() error {
	if strings.TrimSpace(j.StorageKey) == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	if j.MaxConflictRetries < 0 {
		return fmt.Errorf("max_conflict_retries must be >= 0 (got %d)", j.MaxConflictRetries)
	}
	if j.MaxImportBytes <= 0 {
		return fmt.Errorf("max_import_bytes must be > 0 (got %d)", j.MaxImportBytes)
	}
	if j.MaxTitleLength <= 0 {
		return fmt.Errorf("max_title_length must be > 0 (got %d)", j.MaxTitleLength)
	}
	if j.MaxMoodLength <= 0 {
		return fmt.Errorf("max_mood_length must be > 0 (got %d)", j.MaxMoodLength)
	}
	if j.MaxStickers < 0 {
		return fmt.Errorf("max_stickers must be >= 0 (got %d)", j.MaxStickers)
	}
	if _, err := ParseLocale(j.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	if _, err := ParseTimezone(j.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// ParseLocale parses a BCP 47 tag such as "en" or "de-CH". An empty string
// yields language.Und (root collation).
func ParseLocale(raw string) (language.Tag, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", raw, err)
	}
	return tag, nil
}

// ParseTimezone resolves an IANA zone name. "" and "Local" yield time.Local.
func ParseTimezone(raw string) (*time.Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", raw, err)
	}
	return loc, nil
}
