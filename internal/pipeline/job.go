package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	bferrors "github.com/lepinkainen/bookflow/internal/errors"
)

// Job is the declarative description of one schedulable unit. The schedule,
// retry count and alert contact are metadata for the external orchestrator;
// the binary itself only validates and reports them.
type Job struct {
	Name       string `yaml:"name"`
	Schedule   string `yaml:"schedule"`
	Retries    int    `yaml:"retries"`
	AlertEmail string `yaml:"alert_email"`
	Query      string `yaml:"query"`
	MaxResults int    `yaml:"max_results"`
}

// DefaultJob returns the built-in job definition, used when no job file exists.
func DefaultJob(query string, maxResults int) Job {
	return Job{
		Name:       "fetch_and_store_books",
		Schedule:   "@daily",
		Retries:    2,
		Query:      query,
		MaxResults: maxResults,
	}
}

// LoadJob reads and validates a job definition from a YAML file.
func LoadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return Job{}, bferrors.NewConfigurationError("pipeline.jobfile", fmt.Sprintf("invalid YAML: %v", err))
	}

	if job.Name == "" {
		return Job{}, bferrors.NewConfigurationError("pipeline.jobfile", "job name must not be empty")
	}
	if job.Retries < 0 {
		return Job{}, bferrors.NewConfigurationError("pipeline.jobfile", "retries must not be negative")
	}

	return job, nil
}

// ResolveJob loads the job file when it exists, falling back to the built-in
// definition. Query and max_results left empty in the file inherit the
// configured values.
func ResolveJob(path, query string, maxResults int) (Job, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultJob(query, maxResults), nil
	}

	job, err := LoadJob(path)
	if err != nil {
		return Job{}, err
	}

	if job.Query == "" {
		job.Query = query
	}
	if job.MaxResults == 0 {
		job.MaxResults = maxResults
	}

	return job, nil
}
