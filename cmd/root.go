package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/bookflow/internal/config"
	"github.com/lepinkainen/bookflow/internal/datastore"
	"github.com/lepinkainen/bookflow/internal/googlebooks"
	"github.com/lepinkainen/bookflow/internal/pipeline"
	"github.com/lepinkainen/bookflow/internal/transform"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// newStore selects the destination store for the configured backend.
// A package variable so tests can swap in a fake.
var newStore = func(cfg config.Database) datastore.Store {
	if cfg.Backend == "postgres" {
		return datastore.NewPostgresStore(cfg.DSN())
	}
	return datastore.NewSQLiteStore(cfg.DBFile)
}

// CLI represents the complete command structure for the bookflow application
type CLI struct {
	// Global flags
	Query      string `short:"q" help:"Override the configured Books API search query"`
	MaxResults int    `help:"Override the configured number of results to fetch (1-40)"`
	Backend    string `help:"Destination database backend (sqlite or postgres)"`
	DBFile     string `help:"Path to SQLite database file"`
	JobFile    string `help:"Path to the declarative job definition YAML"`

	Run RunCmd `cmd:"" help:"Execute one fetch-transform-load run"`
	Job JobCmd `cmd:"" help:"Work with the declarative job definition"`
}

// RunCmd executes one pipeline run. The external orchestrator triggers this
// on its schedule; a non-zero exit marks the run failed.
type RunCmd struct{}

// JobCmd groups job definition subcommands
type JobCmd struct {
	Validate JobValidateCmd `cmd:"" help:"Parse the job file and report its contents"`
}

// JobValidateCmd parses the declarative job definition and reports it.
type JobValidateCmd struct{}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("bookflow"),
		kong.Description("Fetch book metadata from the Google Books API and load it into a relational table."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv("database.password", "BOOKFLOW_DB_PASSWORD"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	config.SetQuery(cli.Query)
	config.SetMaxResults(cli.MaxResults)

	if cli.Backend != "" {
		viper.Set("database.backend", cli.Backend)
	}
	if cli.DBFile != "" {
		viper.Set("database.dbfile", cli.DBFile)
	}
	if cli.JobFile != "" {
		viper.Set("pipeline.jobfile", cli.JobFile)
	}
}

// Run methods for each command

func (r *RunCmd) Run() error {
	// Fail fast on bad configuration before touching network or database
	if err := config.Validate(); err != nil {
		return err
	}

	job, err := pipeline.ResolveJob(viper.GetString("pipeline.jobfile"), config.Query, config.MaxResults)
	if err != nil {
		return err
	}

	warnIfKeyless()

	client := googlebooks.NewClient(config.GoogleBooksAPIKey)
	store := newStore(config.DatabaseConfig())

	p := pipeline.New(job,
		func(ctx context.Context) ([]googlebooks.Volume, error) {
			return client.Search(ctx, job.Query, job.MaxResults)
		},
		transform.Records,
		func(ctx context.Context, records []transform.Record) error {
			return loadRecords(ctx, store, records)
		},
	)

	return p.Run(context.Background())
}

// warnIfKeyless notes keyless API access, which the Books API serves at a
// lower quota.
func warnIfKeyless() {
	if config.GoogleBooksAPIKey == "" {
		slog.Warn("No Google Books API key configured, using keyless access with reduced quota")
	}
}

// loadRecords writes one run's batch: scoped connection, table ensured,
// all inserts in a single transaction inside the store.
func loadRecords(ctx context.Context, store datastore.Store, records []transform.Record) error {
	if err := store.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(ctx, datastore.BooksDDL); err != nil {
		return err
	}

	return store.BatchInsert(ctx, datastore.BooksTable, datastore.BooksColumns, datastore.BookRows(records))
}

func (j *JobValidateCmd) Run() error {
	job, err := pipeline.LoadJob(viper.GetString("pipeline.jobfile"))
	if err != nil {
		return err
	}

	slog.Info("Job definition is valid",
		"name", job.Name,
		"schedule", job.Schedule,
		"retries", job.Retries,
		"alert_email", job.AlertEmail,
		"query", job.Query,
		"max_results", job.MaxResults)
	return nil
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
