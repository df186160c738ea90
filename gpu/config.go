package gpu

import "github.com/cockroachdb/errors"

const (
	DefaultApplicationName = "Compute Smoke Test"
	DefaultEngineName      = "No Engine"

	// DefaultQueryCount timestamp queries are reserved, enough for a
	// begin/end pair around the submitted work.
	DefaultQueryCount = 2
)

type Config struct {
	ApplicationName string
	EngineName      string
	QueryCount      int
}

func DefaultConfig() Config {
	return Config{
		ApplicationName: DefaultApplicationName,
		EngineName:      DefaultEngineName,
		QueryCount:      DefaultQueryCount,
	}
}

func (c Config) Validate() error {
	if c.ApplicationName == "" {
		return errors.New("application name must not be empty")
	}
	if c.QueryCount < 1 {
		return errors.Newf("query count must be positive, got %d", c.QueryCount)
	}
	return nil
}
