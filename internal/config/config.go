package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	internalerrors "github.com/Schera-ole/metricsaudit/internal/errors"
)

type AuditConfig struct {
	APIKey          string
	AppKey          string
	Site            string
	APIURL          string
	Concurrency     int
	PrefixesFile    string
	OutputFormat    string
	MetricsTextfile string
	LogLevel        string
}

// NewAuditConfig builds the configuration from command-line args and the
// environment. Environment values take precedence over flags. Credentials
// are read from the environment only.
func NewAuditConfig(args []string) (*AuditConfig, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	config := &AuditConfig{
		Site:         DefaultSite,
		Concurrency:  1,
		OutputFormat: FormatText,
		LogLevel:     DefaultLogLevel,
	}

	flags := flag.NewFlagSet("audit", flag.ContinueOnError)
	site := flags.String("s", config.Site, "platform site")
	apiURL := flags.String("u", "", "API base URL, overrides the site")
	concurrency := flags.Int("c", config.Concurrency, "number of metrics probed in parallel")
	prefixesFile := flags.String("p", "", "YAML file with extra vendor prefixes")
	outputFormat := flags.String("o", config.OutputFormat, "report format: text or json")
	metricsTextfile := flags.String("m", "", "write job metrics in Prometheus text format to this file")
	logLevel := flags.String("l", config.LogLevel, "log level")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerrors.ErrInvalidConfig, err)
	}

	envVars := map[string]*string{
		"DD_SITE":          site,
		"DD_API_URL":       apiURL,
		"PREFIXES_FILE":    prefixesFile,
		"OUTPUT_FORMAT":    outputFormat,
		"METRICS_TEXTFILE": metricsTextfile,
		"LOG_LEVEL":        logLevel,
	}

	for envVar, flag := range envVars {
		if envValue := os.Getenv(envVar); envValue != "" {
			*flag = envValue
		}
	}

	if envConcurrency := os.Getenv("CONCURRENCY"); envConcurrency != "" {
		value, err := strconv.Atoi(envConcurrency)
		if err != nil {
			return nil, fmt.Errorf("%w: CONCURRENCY=%q: %v", internalerrors.ErrInvalidConfig, envConcurrency, err)
		}
		*concurrency = value
	}

	config.APIKey = os.Getenv(APIKeyEnv)
	config.AppKey = os.Getenv(AppKeyEnv)
	config.Site = *site
	config.APIURL = *apiURL
	config.Concurrency = *concurrency
	config.PrefixesFile = *prefixesFile
	config.OutputFormat = strings.ToLower(*outputFormat)
	config.MetricsTextfile = *metricsTextfile
	config.LogLevel = strings.ToLower(*logLevel)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks credentials first so a missing key is always the reported error.
func (c *AuditConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("please set the %s and %s environment variables: %w", APIKeyEnv, AppKeyEnv, internalerrors.ErrMissingAPIKey)
	}
	if c.AppKey == "" {
		return fmt.Errorf("please set the %s and %s environment variables: %w", APIKeyEnv, AppKeyEnv, internalerrors.ErrMissingAppKey)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be >= 1, got %d", internalerrors.ErrInvalidConfig, c.Concurrency)
	}
	switch c.OutputFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: unsupported output format %q", internalerrors.ErrInvalidConfig, c.OutputFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unsupported log level %q", internalerrors.ErrInvalidConfig, c.LogLevel)
	}
	if c.APIURL == "" && strings.TrimSpace(c.Site) == "" {
		return fmt.Errorf("%w: site must not be empty", internalerrors.ErrInvalidConfig)
	}
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: invalid API URL %q", internalerrors.ErrInvalidConfig, c.APIURL)
		}
	}
	return nil
}

// BaseURL returns the API base URL without a trailing slash.
func (c *AuditConfig) BaseURL() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	return "https://api." + c.Site
}

type prefixesFile struct {
	Prefixes []string `yaml:"prefixes"`
}

// LoadPrefixes reads extra vendor prefixes from a YAML file of the form
//
//	prefixes:
//	  - istio.
//	  - envoy.
//
// Blank entries are dropped.
func LoadPrefixes(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prefixes file %s: %w", path, err)
	}

	var file prefixesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prefixes file %s: %w", path, err)
	}

	prefixes := make([]string, 0, len(file.Prefixes))
	for _, p := range file.Prefixes {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes, nil
}

// loadDotEnv never overrides variables that are already set.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: failed to load %s: %v", internalerrors.ErrInvalidConfig, path, err)
}
