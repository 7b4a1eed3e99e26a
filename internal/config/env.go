package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., OPENAI_API_KEY).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// PromptFile is the prompt template, read on every request.
	// Env: PROMPT_FILE (default: prompt.txt)
	PromptFile string `envconfig:"PROMPT_FILE" default:"prompt.txt"`

	// RulesFile optionally overrides the response validation rules.
	// Env: RULES_FILE
	RulesFile string `envconfig:"RULES_FILE"`

	// OutputFile is the last-output artifact when no S3 endpoint is set.
	// Env: OUTPUT_FILE (default: output.html)
	OutputFile string `envconfig:"OUTPUT_FILE" default:"output.html"`

	// ArticleTrustedPrefix is the only URL prefix articles may come from.
	// Env: ARTICLE_TRUSTED_PREFIX (default: https://www.bbc.com/news/)
	ArticleTrustedPrefix string `envconfig:"ARTICLE_TRUSTED_PREFIX" default:"https://www.bbc.com/news/"`

	// FetchTimeout bounds the article download.
	// Env: FETCH_TIMEOUT (default: 30s)
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`

	// LLMProvider selects the proofreader (openai or mock).
	// Env: LLM_PROVIDER (default: openai)
	LLMProvider string `envconfig:"LLM_PROVIDER" default:"openai"`

	// OpenAI configures the upstream model.
	OpenAI OpenAIEnv `envconfig:"OPENAI"`

	// OutputS3 stores the artifact in an S3 bucket instead of a file.
	OutputS3 S3Env `envconfig:"OUTPUT_S3"`

	// CORSOrigins is a comma-separated list of origins allowed on the API.
	// Env: CORS_ORIGINS (default: *)
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`
}

// OpenAIEnv holds environment configuration for the model endpoint.
type OpenAIEnv struct {
	// Env: OPENAI_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// BaseURL points at an OpenAI-compatible server.
	// Env: OPENAI_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Env: OPENAI_MODEL (default: gpt-4)
	Model string `envconfig:"MODEL" default:"gpt-4"`

	// Env: OPENAI_TIMEOUT (default: 60s)
	Timeout time.Duration `envconfig:"TIMEOUT" default:"60s"`
}

// S3Env holds environment configuration for the S3 artifact.
type S3Env struct {
	// Env: OUTPUT_S3_ENDPOINT
	Endpoint string `envconfig:"ENDPOINT"`

	// Env: OUTPUT_S3_ACCESS_KEY
	AccessKey string `envconfig:"ACCESS_KEY"`

	// Env: OUTPUT_S3_SECRET_KEY
	SecretKey string `envconfig:"SECRET_KEY"`

	// Env: OUTPUT_S3_BUCKET
	Bucket string `envconfig:"BUCKET"`

	// Env: OUTPUT_S3_KEY (default: output.html)
	Key string `envconfig:"KEY" default:"output.html"`

	// Env: OUTPUT_S3_REGION
	Region string `envconfig:"REGION"`

	// Env: OUTPUT_S3_USE_SSL (default: true)
	UseSSL bool `envconfig:"USE_SSL" default:"true"`
}

// LoadFromEnv loads configuration from environment variables.
// It uses no prefix.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.PromptFile != "" {
		cfg = applyOption(cfg, WithPromptFile(e.PromptFile))
	}
	cfg = applyOption(cfg, WithRulesFile(e.RulesFile))
	if e.OutputFile != "" {
		cfg = applyOption(cfg, WithOutputFile(e.OutputFile))
	}
	if e.ArticleTrustedPrefix != "" {
		cfg = applyOption(cfg, WithTrustedPrefix(e.ArticleTrustedPrefix))
	}
	if e.FetchTimeout > 0 {
		cfg = applyOption(cfg, WithFetchTimeout(e.FetchTimeout))
	}
	if e.LLMProvider != "" {
		cfg = applyOption(cfg, WithProvider(Provider(strings.ToLower(e.LLMProvider))))
	}

	cfg = applyOption(cfg, WithOpenAI(NewOpenAIConfig(
		e.OpenAI.APIKey, e.OpenAI.BaseURL, e.OpenAI.Model, e.OpenAI.Timeout,
	)))

	if e.OutputS3.Endpoint != "" {
		cfg = applyOption(cfg, WithS3(S3Config{
			endpoint:  e.OutputS3.Endpoint,
			accessKey: e.OutputS3.AccessKey,
			secretKey: e.OutputS3.SecretKey,
			bucket:    e.OutputS3.Bucket,
			key:       e.OutputS3.Key,
			region:    e.OutputS3.Region,
			useSSL:    e.OutputS3.UseSSL,
		}))
	}

	if e.CORSOrigins != "" {
		cfg = applyOption(cfg, WithCORSOrigins(ParseList(e.CORSOrigins)))
	}

	return cfg
}

// ParseList splits a comma-separated list, dropping blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}

func applyOption(c AppConfig, opt AppConfigOption) AppConfig {
	opt(&c)
	return c
}
