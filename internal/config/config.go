// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 8080
	DefaultLogLevel      = "INFO"
	DefaultPromptFile    = "prompt.txt"
	DefaultOutputFile    = "output.html"
	DefaultTrustedPrefix = "https://www.bbc.com/news/"
	DefaultFetchTimeout  = 30 * time.Second
	DefaultOpenAIModel   = "gpt-4"
	DefaultOpenAITimeout = 60 * time.Second
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Provider selects the proofreading backend.
type Provider string

// Provider values.
const (
	ProviderOpenAI Provider = "openai"
	ProviderMock   Provider = "mock"
)

// OpenAIConfig configures the upstream model endpoint.
type OpenAIConfig struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

// NewOpenAIConfig creates an OpenAIConfig, defaulting model and timeout.
func NewOpenAIConfig(apiKey, baseURL, model string, timeout time.Duration) OpenAIConfig {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = DefaultOpenAITimeout
	}
	return OpenAIConfig{apiKey: apiKey, baseURL: baseURL, model: model, timeout: timeout}
}

// APIKey returns the API key.
func (o OpenAIConfig) APIKey() string { return o.apiKey }

// BaseURL returns the endpoint base URL, empty for the public API.
func (o OpenAIConfig) BaseURL() string { return o.baseURL }

// Model returns the model name.
func (o OpenAIConfig) Model() string { return o.model }

// Timeout returns the request timeout.
func (o OpenAIConfig) Timeout() time.Duration { return o.timeout }

// S3Config locates the artifact object.
type S3Config struct {
	endpoint  string
	accessKey string
	secretKey string
	bucket    string
	key       string
	region    string
	useSSL    bool
}

// Endpoint returns the S3 endpoint host.
func (s S3Config) Endpoint() string { return s.endpoint }

// AccessKey returns the access key.
func (s S3Config) AccessKey() string { return s.accessKey }

// SecretKey returns the secret key.
func (s S3Config) SecretKey() string { return s.secretKey }

// Bucket returns the bucket name.
func (s S3Config) Bucket() string { return s.bucket }

// Key returns the object key.
func (s S3Config) Key() string { return s.key }

// Region returns the bucket region.
func (s S3Config) Region() string { return s.region }

// UseSSL reports whether the endpoint uses TLS.
func (s S3Config) UseSSL() bool { return s.useSSL }

// IsConfigured reports whether the S3 backend should be used.
func (s S3Config) IsConfigured() bool { return s.endpoint != "" }

// AppConfig holds the main application configuration. It is built once at
// startup and never changes.
type AppConfig struct {
	host          string
	port          int
	logLevel      string
	logFormat     LogFormat
	promptFile    string
	rulesFile     string
	outputFile    string
	trustedPrefix string
	fetchTimeout  time.Duration
	provider      Provider
	openAI        OpenAIConfig
	s3            S3Config
	corsOrigins   []string
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:          DefaultHost,
		port:          DefaultPort,
		logLevel:      DefaultLogLevel,
		logFormat:     LogFormatPretty,
		promptFile:    DefaultPromptFile,
		outputFile:    DefaultOutputFile,
		trustedPrefix: DefaultTrustedPrefix,
		fetchTimeout:  DefaultFetchTimeout,
		provider:      ProviderOpenAI,
		openAI:        NewOpenAIConfig("", "", "", 0),
		corsOrigins:   []string{"*"},
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// PromptFile returns the prompt template path.
func (c AppConfig) PromptFile() string { return c.promptFile }

// RulesFile returns the validation rules path, empty for the defaults.
func (c AppConfig) RulesFile() string { return c.rulesFile }

// OutputFile returns the local artifact path.
func (c AppConfig) OutputFile() string { return c.outputFile }

// TrustedPrefix returns the article URL prefix.
func (c AppConfig) TrustedPrefix() string { return c.trustedPrefix }

// FetchTimeout returns the article download timeout.
func (c AppConfig) FetchTimeout() time.Duration { return c.fetchTimeout }

// Provider returns the proofreading backend.
func (c AppConfig) Provider() Provider { return c.provider }

// OpenAI returns the model endpoint configuration.
func (c AppConfig) OpenAI() OpenAIConfig { return c.openAI }

// S3 returns the S3 artifact configuration.
func (c AppConfig) S3() S3Config { return c.s3 }

// CORSOrigins returns the origins allowed on the JSON API.
func (c AppConfig) CORSOrigins() []string {
	out := make([]string, len(c.corsOrigins))
	copy(out, c.corsOrigins)
	return out
}

// Validate checks that the selected backends are usable.
func (c AppConfig) Validate() error {
	var errs []error
	switch c.provider {
	case ProviderOpenAI:
		if c.openAI.apiKey == "" && c.openAI.baseURL == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	case ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.provider))
	}
	if c.s3.IsConfigured() && c.s3.bucket == "" {
		errs = append(errs, errors.New("OUTPUT_S3_BUCKET is required when OUTPUT_S3_ENDPOINT is set"))
	}
	if c.port <= 0 || c.port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.port))
	}
	return errors.Join(errs...)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithPromptFile sets the prompt template path.
func WithPromptFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.promptFile = path }
}

// WithRulesFile sets the validation rules path.
func WithRulesFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.rulesFile = path }
}

// WithOutputFile sets the local artifact path.
func WithOutputFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.outputFile = path }
}

// WithTrustedPrefix sets the article URL prefix.
func WithTrustedPrefix(prefix string) AppConfigOption {
	return func(c *AppConfig) { c.trustedPrefix = prefix }
}

// WithFetchTimeout sets the article download timeout.
func WithFetchTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) { c.fetchTimeout = d }
}

// WithProvider sets the proofreading backend.
func WithProvider(p Provider) AppConfigOption {
	return func(c *AppConfig) { c.provider = p }
}

// WithOpenAI sets the model endpoint.
func WithOpenAI(o OpenAIConfig) AppConfigOption {
	return func(c *AppConfig) { c.openAI = o }
}

// WithS3 sets the S3 artifact configuration.
func WithS3(s S3Config) AppConfigOption {
	return func(c *AppConfig) { c.s3 = s }
}

// WithCORSOrigins sets the allowed API origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) { c.corsOrigins = origins }
}

// NewAppConfigWithOptions creates an AppConfig with the given options applied.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
