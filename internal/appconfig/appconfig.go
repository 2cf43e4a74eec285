// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/modelmap/internal/catalog"
	"github.com/mwiater/modelmap/internal/util"
	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultEndpoint is the Azure Resource Manager endpoint.
	DefaultEndpoint = "https://management.azure.com"
	// DefaultAPIVersion is the Microsoft.CognitiveServices api-version used for model listing.
	DefaultAPIVersion = "2024-10-01"
	// defaultRequestTimeout is the default timeout for a single ARM request.
	defaultRequestTimeout = 60 * time.Second
	// defaultConcurrency is the number of regions queried at once.
	defaultConcurrency = 4
)

// DefaultRegions lists the locations known to host AI Services model catalogs.
// The ARM models API is location-scoped, so each one is queried.
var DefaultRegions = []string{
	"australiaeast",
	"brazilsouth",
	"canadacentral",
	"canadaeast",
	"eastus",
	"eastus2",
	"francecentral",
	"germanywestcentral",
	"japaneast",
	"koreacentral",
	"northcentralus",
	"norwayeast",
	"polandcentral",
	"southafricanorth",
	"southcentralus",
	"southeastasia",
	"southindia",
	"swedencentral",
	"switzerlandnorth",
	"uksouth",
	"westeurope",
	"westus",
	"westus3",
}

// Config represents the top-level application configuration.
type Config struct {
	Subscription   string   `json:"subscription,omitempty" mapstructure:"subscription"`
	Regions        []string `json:"regions,omitempty" mapstructure:"regions"`
	Endpoint       string   `json:"endpoint,omitempty" mapstructure:"endpoint"`
	APIVersion     string   `json:"apiVersion,omitempty" mapstructure:"apiVersion"`
	AccessToken    string   `json:"-" mapstructure:"accessToken"`
	TimeoutSeconds int      `json:"timeout,omitempty" mapstructure:"timeout"`
	Concurrency    int      `json:"concurrency,omitempty" mapstructure:"concurrency"`
	Debug          bool     `json:"debug" mapstructure:"debug"`
	JSONMode       bool     `json:"jsonMode" mapstructure:"jsonMode"`
	ShowLocations  bool     `json:"locations" mapstructure:"locations"`
	NonOpenAI      bool     `json:"nonOpenAI" mapstructure:"nonOpenAI"`
	ExportPath     string   `json:"export,omitempty" mapstructure:"export"`
	LogFile        string   `json:"logFile,omitempty" mapstructure:"logFile"`
	ConfigPath     string   `json:"-" mapstructure:"-"`
}

// RegionList returns the configured regions with blanks and repeats removed,
// or DefaultRegions when none are configured.
func (c Config) RegionList() []string {
	if regions := util.Dedupe(c.Regions); len(regions) > 0 {
		return regions
	}
	out := make([]string, len(DefaultRegions))
	copy(out, DefaultRegions)
	return out
}

// RequestTimeout returns the timeout duration for ARM requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Workers returns how many regions may be queried at once.
func (c Config) Workers() int {
	if c.Concurrency <= 0 {
		return defaultConcurrency
	}
	return c.Concurrency
}

// ManagementEndpoint returns the ARM base URL without a trailing slash.
func (c Config) ManagementEndpoint() string {
	if e := strings.TrimSpace(c.Endpoint); e != "" {
		return strings.TrimRight(e, "/")
	}
	return DefaultEndpoint
}

// ModelsAPIVersion returns the api-version query value for model listing.
func (c Config) ModelsAPIVersion() string {
	if v := strings.TrimSpace(c.APIVersion); v != "" {
		return v
	}
	return DefaultAPIVersion
}

// Mode returns the capability filter mode selected by the configuration.
func (c Config) Mode() catalog.Mode {
	if c.NonOpenAI {
		return catalog.ModeNonOpenAIChat
	}
	return catalog.ModeOpenAIResponses
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "modelmap.log"
}

// configSchema describes the accepted shape of a JSON configuration file.
const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "subscription": { "type": "string" },
    "regions": {
      "type": "array",
      "minItems": 1,
      "items": { "type": "string", "pattern": "^[a-z0-9]+$" }
    },
    "endpoint": { "type": "string", "pattern": "^https?://" },
    "apiVersion": { "type": "string", "minLength": 1 },
    "accessToken": { "type": "string" },
    "timeout": { "type": "integer", "minimum": 0 },
    "concurrency": { "type": "integer", "minimum": 0 },
    "debug": { "type": "boolean" },
    "jsonMode": { "type": "boolean" },
    "locations": { "type": "boolean" },
    "nonOpenAI": { "type": "boolean" },
    "export": { "type": "string" },
    "logFile": { "type": "string" }
  }
}`

// ValidateFile checks the JSON file at path against the configuration schema.
// A missing file is reported with an error wrapping os.ErrNotExist.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	return Validate(data)
}

// Validate checks a JSON configuration document against the configuration schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, ", "))
}

// ErrInvalidConfig is returned when a configuration file fails schema validation.
var ErrInvalidConfig = errors.New("invalid configuration")
