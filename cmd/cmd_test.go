package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/proofpipe/core"
	"github.com/gaurav-prasanna/proofpipe/core/output"
	"github.com/gaurav-prasanna/proofpipe/core/render"
	"github.com/gaurav-prasanna/proofpipe/internal/config"
)

func TestSelectRenderer(t *testing.T) {
	r, err := selectRenderer(true, false, false)
	require.NoError(t, err)
	assert.IsType(t, &render.PDFRenderer{}, r)

	r, err = selectRenderer(false, true, false)
	require.NoError(t, err)
	assert.IsType(t, &render.JSONRenderer{}, r)

	r, err = selectRenderer(false, false, true)
	require.NoError(t, err)
	assert.IsType(t, &render.HTMLRenderer{}, r)

	_, err = selectRenderer(false, false, false)
	assert.Error(t, err)

	_, err = selectRenderer(true, true, false)
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))
	got, err = readInput(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	_, err = readInput(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestApplyServeOverrides(t *testing.T) {
	cfg := applyServeOverrides(config.NewAppConfig(), "127.0.0.1", 9999)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr())

	cfg = applyServeOverrides(config.NewAppConfig(), "", 0)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestNewService_MockProvider(t *testing.T) {
	dir := t.TempDir()
	promptFile := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(promptFile, []byte("Proofread:\n{{TEXT}}"), 0o644))

	cfg := config.NewAppConfigWithOptions(
		config.WithProvider(config.ProviderMock),
		config.WithPromptFile(promptFile),
		config.WithOutputFile(filepath.Join(dir, "output.html")),
	)

	svc, store, err := newService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.IsType(t, &output.FileStore{}, store)

	res, err := svc.Run(context.Background(), core.Request{RawText: "Hello.\n\nWorld."})
	require.NoError(t, err)
	assert.Equal(t, "Hello.<p>World.", res.Output)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.Output, string(saved))
}

func TestNewService_InvalidConfig(t *testing.T) {
	_, _, err := newService(config.NewAppConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestNewStore_S3(t *testing.T) {
	env := config.EnvConfig{}
	env.OutputS3.Endpoint = "localhost:9000"
	env.OutputS3.Bucket = "proofs"
	env.OutputS3.Key = "last.html"

	store, err := newStore(env.ToAppConfig())
	require.NoError(t, err)
	assert.IsType(t, &output.S3Store{}, store)
	assert.Equal(t, "http://localhost:9000/proofs/last.html", store.Location())
}
