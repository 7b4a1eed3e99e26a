package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/proofpipe/core"
)

func TestCompose_WithPlaceholder(t *testing.T) {
	tmpl := "Check this:\n{{TEXT}}\nThanks. Literal {{TEXT}} stays."

	got := Compose(tmpl, "X")

	assert.Equal(t, "Check this:\n===TEXT TO CHECK===\nX\nThanks. Literal {{TEXT}} stays.", got)
	assert.Equal(t, 1, strings.Count(got, Marker))
}

func TestCompose_WithoutPlaceholder(t *testing.T) {
	tmpl := "Proofread the text below."

	got := Compose(tmpl, "X")

	assert.Equal(t, tmpl+"\n"+Marker+"X", got)
}

func TestCompose_Deterministic(t *testing.T) {
	assert.Equal(t, Compose("a {{TEXT}} b", "t"), Compose("a {{TEXT}} b", "t"))
}

func TestPayload(t *testing.T) {
	assert.Equal(t, "X\ntail", Payload(Compose("head {{TEXT}}\ntail", "X")))
	assert.Equal(t, "X", Payload(Compose("no placeholder", "X")))
	assert.Equal(t, "plain", Payload("plain"))
}

func TestFileTemplate_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1 {{TEXT}}"), 0o644))

	tmpl := FileTemplate{Path: path}
	got, err := tmpl.Load()
	require.NoError(t, err)
	assert.Equal(t, "v1 {{TEXT}}", got)

	// Edits are picked up on the next load.
	require.NoError(t, os.WriteFile(path, []byte("v2 {{TEXT}}"), 0o644))
	got, err = tmpl.Load()
	require.NoError(t, err)
	assert.Equal(t, "v2 {{TEXT}}", got)
}

func TestFileTemplate_Missing(t *testing.T) {
	_, err := FileTemplate{Path: filepath.Join(t.TempDir(), "nope.txt")}.Load()
	require.ErrorIs(t, err, core.ErrTemplateMissing)
}
