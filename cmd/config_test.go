package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "auditpipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
timeout: 5s
link_workers: 16
doc_workers: 2
rps: 2.5
output_dir: /tmp/audits
enrich: true
model: mistralai/Mistral-7B-Instruct-v0.2
verbose: true
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 16, cfg.LinkWorkers)
	assert.Equal(t, 2, cfg.DocWorkers)
	assert.Equal(t, 2.5, cfg.RPS)
	assert.Equal(t, "/tmp/audits", cfg.OutputDir)
	assert.True(t, cfg.Enrich)
	assert.Equal(t, "mistralai/Mistral-7B-Instruct-v0.2", cfg.Model)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "timeout: [not, a, duration")
	_, err := loadConfig(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
timeout: 5s
doc_workers: 2
output_dir: /tmp/from-file
`)

	restoreConfig, restoreWorkers := flagConfig, flagDocWorkers
	defer func() {
		flagConfig, flagDocWorkers = restoreConfig, restoreWorkers
	}()

	flagConfig = path
	require.NoError(t, auditCmd.Flags().Set("doc_workers", "6"))

	cfg, err := resolveConfig(auditCmd)
	require.NoError(t, err)

	// File overrides the untouched flag defaults.
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/from-file", cfg.OutputDir)
	// An explicit flag beats the file.
	assert.Equal(t, 6, cfg.DocWorkers)
	// Leftover defaults pass through.
	assert.Equal(t, 8, cfg.LinkWorkers)
}

func TestValidateFlagsFormats(t *testing.T) {
	restore := func(text, json, md, pdf bool) {
		flagText, flagJSON, flagMarkdown, flagPDF = text, json, md, pdf
	}
	defer restore(flagText, flagJSON, flagMarkdown, flagPDF)

	restore(false, false, false, false)
	assert.NoError(t, validateFlags())

	restore(false, true, false, false)
	assert.NoError(t, validateFlags())

	restore(true, true, false, false)
	assert.ErrorContains(t, validateFlags(), "one output format")
}

func TestValidateFlagsEnrichment(t *testing.T) {
	restoreEnrich, restoreModel, restoreURL := flagEnrich, flagModel, flagHFURL
	defer func() {
		flagEnrich, flagModel, flagHFURL = restoreEnrich, restoreModel, restoreURL
	}()

	flagEnrich, flagModel, flagHFURL = false, "some/model", ""
	assert.ErrorContains(t, validateFlags(), "--model requires --enrich")

	flagEnrich, flagModel, flagHFURL = false, "", "https://inference.example"
	assert.ErrorContains(t, validateFlags(), "--hf_url requires --enrich")

	flagEnrich, flagModel, flagHFURL = true, "some/model", ""
	assert.NoError(t, validateFlags())
}
