package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araddon/filtres/testutil"
)

func TestMain(m *testing.M) {
	testutil.Setup()
	os.Exit(m.Run())
}

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunArgs(t *testing.T) {
	code, out, errOut := runCmd(t, "", `height == 73`, `height < 73 or height > 99`)
	assert.Equal(t, 0, code, errOut)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, 2, len(lines))
	assert.JSONEq(t, `{"query":{"filtered":{"filter":[{"term":{"height":73}}]}}}`, lines[0])
	assert.JSONEq(t, `{"query":{"filtered":{"filter":[{"bool":{"should":[{"range":{"height":{"lt":73}}},{"range":{"height":{"gt":99}}}]}}]}}}`, lines[1])
}

func TestRunStdin(t *testing.T) {
	code, out, _ := runCmd(t, "height == 73\n\n  firstname ~= \"o.+\"  \n")
	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, 2, len(lines))
	assert.JSONEq(t, `{"query":{"filtered":{"filter":[{"bool":{"must":{"regexp":{"firstname":"o.+"}}}}]}}}`, lines[1])
}

func TestRunRejected(t *testing.T) {
	code, out, errOut := runCmd(t, "", `height >`, `height == 73`, `3 $ 4`)
	assert.Equal(t, 1, code)
	assert.Equal(t, 1, len(strings.Split(strings.TrimSpace(out), "\n")))
	assert.Contains(t, errOut, `rejected "height >"`)
	assert.Contains(t, errOut, `rejected "3 $ 4"`)
}

func TestRunModes(t *testing.T) {
	code, out, _ := runCmd(t, "", "--ast", `not(x==1)`)
	assert.Equal(t, 0, code)
	assert.Equal(t, "not (x == 1)\n", out)

	code, out, _ = runCmd(t, "", "--pretty", `height == 73`)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "\n  \"query\": {")

	code, out, _ = runCmd(t, "", "--schema")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"filtered"`)

	code, _, _ = runCmd(t, "", "--no-such-flag")
	assert.Equal(t, 2, code)

	code, _, _ = runCmd(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "x == 1")
	assert.Equal(t, 2, code)
}

func TestConfigPrecedence(t *testing.T) {
	cfg, err := LoadConfig(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.False(t, cfg.Pretty)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "filtres.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("pretty: true\nlog_level: info\n"), 0o600))

	// config file over defaults
	cfg, err = LoadConfig(newFlagSet(), []string{"--config", cfgFile})
	require.NoError(t, err)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, cfgFile, cfg.Config)

	// env over config file
	t.Setenv("FILTRES_LOG_LEVEL", "warn")
	cfg, err = LoadConfig(newFlagSet(), []string{"--config", cfgFile})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	// flags over env
	cfg, err = LoadConfig(newFlagSet(), []string{"--config", cfgFile, "--log-level", "debug", "x == 1"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Pretty)
}
