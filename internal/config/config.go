package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"

	bferrors "github.com/lepinkainen/bookflow/internal/errors"
)

// Global configuration variables
var (
	// GoogleBooksAPIKey is the API key for the Google Books API (optional,
	// the volumes endpoint also serves keyless requests)
	GoogleBooksAPIKey string
	// Query is the search term sent to the Books API
	Query string
	// MaxResults is the number of volumes requested per run
	MaxResults int
)

// Database holds the connection profile for the destination database.
// The profile comes from config/environment, never from code.
type Database struct {
	Backend  string // "sqlite" or "postgres"
	DBFile   string // sqlite only
	Host     string
	Port     int
	Name     string
	User     string
	Password string
}

// DSN returns the Postgres connection string for the profile.
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String()
}

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("googlebooks.query", "data engineering")
	viper.SetDefault("googlebooks.maxresults", 25)
	viper.SetDefault("database.backend", "sqlite")
	viper.SetDefault("database.dbfile", "./bookflow.db")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("pipeline.jobfile", "./job.yaml")

	// Get values from viper
	GoogleBooksAPIKey = viper.GetString("googlebooks.apikey")
	Query = viper.GetString("googlebooks.query")
	MaxResults = viper.GetInt("googlebooks.maxresults")
}

// DatabaseConfig returns the destination database connection profile.
func DatabaseConfig() Database {
	return Database{
		Backend:  viper.GetString("database.backend"),
		DBFile:   viper.GetString("database.dbfile"),
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		Name:     viper.GetString("database.name"),
		User:     viper.GetString("database.user"),
		Password: viper.GetString("database.password"),
	}
}

// Validate fails fast on configuration that would make a run pointless.
// It runs before any network or database call.
func Validate() error {
	if Query == "" {
		return bferrors.NewConfigurationError("googlebooks.query", "must not be empty")
	}
	if MaxResults < 1 {
		return bferrors.NewConfigurationError("googlebooks.maxresults", "must be at least 1")
	}

	db := DatabaseConfig()
	switch db.Backend {
	case "sqlite":
		if db.DBFile == "" {
			return bferrors.NewConfigurationError("database.dbfile", "must not be empty for the sqlite backend")
		}
	case "postgres":
		if db.Host == "" {
			return bferrors.NewConfigurationError("database.host", "required for the postgres backend")
		}
		if db.Name == "" {
			return bferrors.NewConfigurationError("database.name", "required for the postgres backend")
		}
		if db.User == "" {
			return bferrors.NewConfigurationError("database.user", "required for the postgres backend")
		}
		if db.Password == "" {
			return bferrors.NewConfigurationError("database.password", "required for the postgres backend (set BOOKFLOW_DB_PASSWORD)")
		}
	default:
		return bferrors.NewConfigurationError("database.backend", "must be \"sqlite\" or \"postgres\"")
	}

	return nil
}

// SetQuery overrides the configured search query (CLI flag).
func SetQuery(query string) {
	if query != "" {
		Query = query
	}
}

// SetMaxResults overrides the configured result count (CLI flag).
func SetMaxResults(n int) {
	if n > 0 {
		MaxResults = n
	}
}
