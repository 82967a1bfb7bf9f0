package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "record-validator/internal/errors"
	"record-validator/internal/validator"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, validator.MatchPrefix, cfg.Mode())
	assert.True(t, cfg.Progress)
	assert.Equal(t, 2*time.Second, cfg.ProgressInterval)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Empty(t, cfg.Jobs)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
log_level: debug
log_format: json
match_mode: full
progress: false
progress_interval: 500ms
workers: 2
report_dir: /tmp/reports
jobs:
  - name: january
    input: data/jan.json
    output: out/jan.json
    report: jan.yaml
  - input: data/feb.json
    output: out/feb.json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, validator.MatchFull, cfg.Mode())
	assert.False(t, cfg.Progress)
	assert.Equal(t, 500*time.Millisecond, cfg.ProgressInterval)
	assert.Equal(t, 2, cfg.Workers)
	require.Len(t, cfg.Jobs, 2)
	assert.Equal(t, "january", cfg.Jobs[0].Name)
	assert.Equal(t, filepath.Join("/tmp/reports", "jan.yaml"), cfg.Jobs[0].Report)
	assert.Equal(t, "job-2", cfg.Jobs[1].Name)
	assert.Empty(t, cfg.Jobs[1].Report)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"match_mode": "prefix", "workers": 1}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RECVAL_MATCH_MODE", "full")
	t.Setenv("RECVAL_WORKERS", "3")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, validator.MatchFull, cfg.Mode())
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad match mode", "match_mode: fuzzy\n"},
		{"bad log format", "log_format: xml\n"},
		{"job without output", "jobs:\n  - input: a.json\n"},
		{"duplicate job", "jobs:\n  - {name: a, input: a.json, output: b.json}\n  - {name: a, input: c.json, output: d.json}\n"},
		{"duplicate output", "jobs:\n  - {name: a, input: a.json, output: out.json}\n  - {name: b, input: c.json, output: ./out.json}\n"},
		{"duplicate report", "jobs:\n  - {name: a, input: a.json, output: a.out.json, report: r.yaml}\n  - {name: b, input: b.json, output: b.out.json, report: r.yaml}\n"},
		{"report overwrites output", "jobs:\n  - {name: a, input: a.json, output: a.out.json, report: b.out.json}\n  - {name: b, input: b.json, output: b.out.json}\n"},
		{"resolved report overwrites output", "report_dir: out\njobs:\n  - {name: a, input: a.json, output: out/x.json}\n  - {name: b, input: b.json, output: b.out.json, report: x.json}\n"},
		{"two stdout jobs", "jobs:\n  - {name: a, input: a.json, output: \"-\"}\n  - {name: b, input: b.json, output: \"-\"}\n"},
		{"report escapes dir", "report_dir: /tmp/reports\njobs:\n  - {input: a.json, output: b.json, report: ../../etc/x.yaml}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfiguration), err.Error())
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfiguration))
}

func TestValidate_SharedInputDistinctTargets(t *testing.T) {
	cfg := &AppConfig{Jobs: []Job{
		{Name: "a", Input: "in.json", Output: "a.json", Report: "a.yaml"},
		{Name: "b", Input: "in.json", Output: "b.json"},
		{Name: "c", Input: "in.json", Output: StdoutOutput},
	}}
	cfg.Init()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_DuplicateOutput(t *testing.T) {
	cfg := &AppConfig{Jobs: []Job{
		{Name: "first", Input: "in.json", Output: "data/out.json"},
		{Name: "second", Input: "in.json", Output: "data/../data/out.json"},
	}}
	cfg.Init()

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfiguration))
	assert.Contains(t, err.Error(), "output path is already used")
}
