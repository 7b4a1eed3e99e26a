package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/proofpipe/core"
	"github.com/gaurav-prasanna/proofpipe/core/output"
	"github.com/gaurav-prasanna/proofpipe/core/prompt"
	"github.com/gaurav-prasanna/proofpipe/core/validate"
)

type fakeProofreader struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeProofreader) Proofread(_ context.Context, composed string) (string, error) {
	f.calls++
	f.prompt = composed
	return f.reply, f.err
}

// echo returns the text to check unchanged.
type echo struct{ calls int }

func (e *echo) Proofread(_ context.Context, composed string) (string, error) {
	e.calls++
	return prompt.Payload(composed), nil
}

type fakeArticles struct {
	text  string
	err   error
	calls int
}

func (f *fakeArticles) Fetch(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

type failingTemplate struct{}

func (failingTemplate) Load() (string, error) {
	return "", errors.New("permission denied")
}

type failingStore struct{}

func (failingStore) Save(context.Context, []byte) error   { return errors.New("disk full") }
func (failingStore) Load(context.Context) ([]byte, error) { return nil, output.ErrNoArtifact }
func (failingStore) Location() string                     { return "nowhere" }

func newStore(t *testing.T) *output.FileStore {
	t.Helper()
	return output.NewFileStore(filepath.Join(t.TempDir(), "output.html"))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRun_RawTextUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	proofer := &echo{}
	svc := New(prompt.StaticTemplate("Check {{TEXT}}"), proofer, validate.New(validate.DefaultRules()),
		WithStore(store), WithLogger(quietLogger()))

	res, err := svc.Run(ctx, core.Request{RawText: "Hello.\r\n\r\nWorld.  "})
	require.NoError(t, err)

	assert.Equal(t, core.SourceText, res.Source)
	assert.Equal(t, "Hello.\n\nWorld.", res.Input)
	assert.Equal(t, "Hello.<p>World.", res.Output)
	assert.Equal(t, 1, proofer.calls)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Output, string(saved))
}

func TestRun_ComposesPrompt(t *testing.T) {
	proofer := &fakeProofreader{reply: "Hello world"}
	svc := New(prompt.StaticTemplate("Fix this:"), proofer, validate.New(validate.DefaultRules()),
		WithLogger(quietLogger()))

	_, err := svc.Run(context.Background(), core.Request{RawText: "Hello world"})
	require.NoError(t, err)
	assert.Equal(t, "Fix this:\n===TEXT TO CHECK===\nHello world", proofer.prompt)
}

func TestRun_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\r\n\r\n"} {
		proofer := &fakeProofreader{reply: "x"}
		svc := New(prompt.StaticTemplate("{{TEXT}}"), proofer, validate.New(validate.DefaultRules()),
			WithLogger(quietLogger()))

		_, err := svc.Run(context.Background(), core.Request{RawText: raw})
		require.ErrorIs(t, err, core.ErrEmptyInput)
		assert.Zero(t, proofer.calls)
	}
}

func TestRun_URLTakesPrecedence(t *testing.T) {
	articles := &fakeArticles{text: "<p>From the article.</p>"}
	proofer := &echo{}
	svc := New(prompt.StaticTemplate("{{TEXT}}"), proofer, validate.New(validate.DefaultRules()),
		WithArticles(articles), WithLogger(quietLogger()))

	res, err := svc.Run(context.Background(), core.Request{
		RawText:   "typed text is ignored",
		SourceURL: "https://www.bbc.com/news/articles/x",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, articles.calls)
	assert.Equal(t, core.SourceURL, res.Source)
	assert.Equal(t, "https://www.bbc.com/news/articles/x", res.SourceURL)
	assert.Equal(t, "<p>From the article.</p>", res.Input)
	assert.Equal(t, "<p>From the article.</p>", res.Output)
}

func TestRun_URLWithoutArticleSource(t *testing.T) {
	proofer := &echo{}
	svc := New(prompt.StaticTemplate("{{TEXT}}"), proofer, validate.New(validate.DefaultRules()),
		WithLogger(quietLogger()))

	_, err := svc.Run(context.Background(), core.Request{SourceURL: "https://example.com/a"})
	require.ErrorIs(t, err, core.ErrUntrustedSource)
	assert.Zero(t, proofer.calls)
}

func TestRun_Failures(t *testing.T) {
	long := strings.Repeat("word ", 20)

	tests := []struct {
		name      string
		template  core.TemplateSource
		articles  *fakeArticles
		proofer   *fakeProofreader
		store     core.ArtifactStore
		req       core.Request
		want      error
		callsWant int
	}{
		{
			name:     "untrusted source",
			template: prompt.StaticTemplate("{{TEXT}}"),
			articles: &fakeArticles{err: core.ErrUntrustedSource},
			proofer:  &fakeProofreader{},
			req:      core.Request{SourceURL: "https://evil.example/news"},
			want:     core.ErrUntrustedSource,
		},
		{
			name:     "download failure",
			template: prompt.StaticTemplate("{{TEXT}}"),
			articles: &fakeArticles{err: core.ErrDownload},
			proofer:  &fakeProofreader{},
			req:      core.Request{SourceURL: "https://www.bbc.com/news/x"},
			want:     core.ErrDownload,
		},
		{
			name:     "missing template",
			template: prompt.FileTemplate{Path: filepath.Join(t.TempDir(), "missing.txt")},
			proofer:  &fakeProofreader{},
			req:      core.Request{RawText: "Hello"},
			want:     core.ErrTemplateMissing,
		},
		{
			name:     "unreadable template",
			template: failingTemplate{},
			proofer:  &fakeProofreader{},
			req:      core.Request{RawText: "Hello"},
			want:     core.ErrTemplateMissing,
		},
		{
			name:      "upstream failure",
			template:  prompt.StaticTemplate("{{TEXT}}"),
			proofer:   &fakeProofreader{err: errors.New("connection reset")},
			req:       core.Request{RawText: "Hello"},
			want:      core.ErrUpstream,
			callsWant: 1,
		},
		{
			name:      "non-compliant",
			template:  prompt.StaticTemplate("{{TEXT}}"),
			proofer:   &fakeProofreader{reply: "I didn't provide enough context"},
			req:       core.Request{RawText: "Hello world"},
			want:      core.ErrNonCompliantResponse,
			callsWant: 1,
		},
		{
			name:      "truncated",
			template:  prompt.StaticTemplate("{{TEXT}}"),
			proofer:   &fakeProofreader{reply: "word"},
			req:       core.Request{RawText: long},
			want:      core.ErrTruncatedResponse,
			callsWant: 1,
		},
		{
			name:      "malformed markup",
			template:  prompt.StaticTemplate("{{TEXT}}"),
			proofer:   &fakeProofreader{reply: `Hello <b style="color:red">x</b>`},
			req:       core.Request{RawText: "Hello x"},
			want:      core.ErrMalformedMarkup,
			callsWant: 1,
		},
		{
			name:      "persistence failure",
			template:  prompt.StaticTemplate("{{TEXT}}"),
			proofer:   &fakeProofreader{reply: "Hello"},
			store:     failingStore{},
			req:       core.Request{RawText: "Hello"},
			want:      core.ErrPersistence,
			callsWant: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []Option{WithLogger(quietLogger())}
			if tt.articles != nil {
				opts = append(opts, WithArticles(tt.articles))
			}
			store := tt.store
			if store == nil {
				store = newStore(t)
			}
			opts = append(opts, WithStore(store))

			svc := New(tt.template, tt.proofer, validate.New(validate.DefaultRules()), opts...)
			res, err := svc.Run(context.Background(), tt.req)

			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, core.Result{}, res)
			assert.Equal(t, tt.callsWant, tt.proofer.calls)

			if fs, ok := store.(*output.FileStore); ok {
				_, loadErr := fs.Load(context.Background())
				assert.ErrorIs(t, loadErr, output.ErrNoArtifact, "nothing persisted")
			}
		})
	}
}

func TestRun_RejectionKeepsPreviousArtifact(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	proofer := &fakeProofreader{reply: "Hello world"}
	svc := New(prompt.StaticTemplate("{{TEXT}}"), proofer, validate.New(validate.DefaultRules()),
		WithStore(store), WithLogger(quietLogger()))

	_, err := svc.Run(ctx, core.Request{RawText: "Hello world"})
	require.NoError(t, err)

	proofer.reply = "please provide the text"
	_, err = svc.Run(ctx, core.Request{RawText: "Hello world"})
	require.ErrorIs(t, err, core.ErrNonCompliantResponse)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", string(saved))
}
