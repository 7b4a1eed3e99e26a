package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"HOST",
	"PORT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"PROMPT_FILE",
	"RULES_FILE",
	"OUTPUT_FILE",
	"ARTICLE_TRUSTED_PREFIX",
	"FETCH_TIMEOUT",
	"LLM_PROVIDER",
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"OPENAI_MODEL",
	"OPENAI_TIMEOUT",
	"OUTPUT_S3_ENDPOINT",
	"OUTPUT_S3_ACCESS_KEY",
	"OUTPUT_S3_SECRET_KEY",
	"OUTPUT_S3_BUCKET",
	"OUTPUT_S3_KEY",
	"OUTPUT_S3_REGION",
	"OUTPUT_S3_USE_SSL",
	"CORS_ORIGINS",
}

// clearEnvVars unsets every variable the config reads and restores them
// after the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		if old, ok := os.LookupEnv(v); ok {
			t.Cleanup(func() { _ = os.Setenv(v, old) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(v) })
		}
		require.NoError(t, os.Unsetenv(v))
	}
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	clearEnvVars(t)

	env, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, env.Host)
	assert.Equal(t, DefaultPort, env.Port)
	assert.Equal(t, DefaultLogLevel, env.LogLevel)
	assert.Equal(t, DefaultPromptFile, env.PromptFile)
	assert.Equal(t, DefaultOutputFile, env.OutputFile)
	assert.Equal(t, DefaultTrustedPrefix, env.ArticleTrustedPrefix)
	assert.Equal(t, DefaultFetchTimeout, env.FetchTimeout)
	assert.Equal(t, DefaultOpenAIModel, env.OpenAI.Model)
	assert.Equal(t, DefaultOpenAITimeout, env.OpenAI.Timeout)
	assert.True(t, env.OutputS3.UseSSL)

	assert.Equal(t, NewAppConfig(), env.ToAppConfig())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("LLM_PROVIDER", "Mock")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OUTPUT_S3_ENDPOINT", "minio:9000")
	t.Setenv("OUTPUT_S3_BUCKET", "proofs")
	t.Setenv("OUTPUT_S3_USE_SSL", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg := env.ToAppConfig()

	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout())
	assert.Equal(t, ProviderMock, cfg.Provider())
	assert.Equal(t, "sk-test", cfg.OpenAI().APIKey())
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI().Model())
	assert.True(t, cfg.S3().IsConfigured())
	assert.Equal(t, "proofs", cfg.S3().Bucket())
	assert.Equal(t, "output.html", cfg.S3().Key())
	assert.False(t, cfg.S3().UseSSL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_InvalidDuration(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("FETCH_TIMEOUT", "soon")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadConfig_DotEnvDoesNotOverride(t *testing.T) {
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7000\nPROMPT_FILE=/etc/proofpipe/prompt.txt\n"), 0o644))
	t.Setenv("PORT", "7001")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Port())
	assert.Equal(t, "/etc/proofpipe/prompt.txt", cfg.PromptFile())
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []AppConfigOption
		wantErr bool
	}{
		{"openai without key", nil, true},
		{"openai with key", []AppConfigOption{WithOpenAI(NewOpenAIConfig("k", "", "", 0))}, false},
		{"local endpoint without key", []AppConfigOption{WithOpenAI(NewOpenAIConfig("", "http://localhost:11434/v1", "", 0))}, false},
		{"mock", []AppConfigOption{WithProvider(ProviderMock)}, false},
		{"unknown provider", []AppConfigOption{WithProvider("claude")}, true},
		{"s3 without bucket", []AppConfigOption{WithProvider(ProviderMock), WithS3(S3Config{endpoint: "minio:9000"})}, true},
		{"bad port", []AppConfigOption{WithProvider(ProviderMock), WithPort(70000)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAppConfigWithOptions(tt.opts...).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppConfig_ApplyIsCopy(t *testing.T) {
	base := NewAppConfig()
	changed := base.Apply(WithPort(1234))

	assert.Equal(t, DefaultPort, base.Port())
	assert.Equal(t, 1234, changed.Port())
}
