package env

import (
	"os"
	"strings"

	"github.com/APrigarina/open-model-zoo/internal/envvar"
)

// Environment is the runtime environment of the application.
type Environment string

const (
	// Development enables human-readable colored logging.
	Development Environment = "development"

	// Production enables structured JSON logging.
	Production Environment = "production"
)

// FromEnv determines the environment from the OMZ_ENV variable.
// Unset or unknown values default to Development.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.OMZEnv)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}
