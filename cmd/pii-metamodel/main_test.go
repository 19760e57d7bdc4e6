package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"pii-metamodel/internal/metamodel"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-env", ""}, args...), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_JSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "metamodel.json")

	code, stdout, stderr := runCLI(t, "-out", out, "pii-metamodel/examples/accounts")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var list metamodel.DataProtectionConfigList
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list.Config, 2)
	assert.Equal(t, "pii-metamodel/examples/accounts.AccountOpened", list.Config[0].Type)
	assert.Equal(t, "2", list.Config[0].Revision)
	assert.Equal(t, "$.accountId", list.Config[0].SubjectID.Path)
	assert.Equal(t, "pii-metamodel/examples/accounts.AccountClosed", list.Config[1].Type)
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "metamodel.yaml")
	cfgPath := filepath.Join(dir, "pii-metamodel.yaml")

	cfg := "packages:\n  - pii-metamodel/examples/graph\n" +
		"ignore:\n  - pii-metamodel/examples/graph.Node\n" +
		"output: " + out + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	code, _, stderr := runCLI(t, "-config", cfgPath)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var list metamodel.DataProtectionConfigList
	require.NoError(t, yaml.Unmarshal(data, &list))
	require.Len(t, list.Config, 1)
	assert.Equal(t, []metamodel.SensitiveDataConfig{{Path: "$.title", ReplacementValue: "untitled"}},
		list.Config[0].SensitiveData)
}

func TestRun_RecursiveType(t *testing.T) {
	out := filepath.Join(t.TempDir(), "metamodel.json")

	code, _, stderr := runCLI(t, "-out", out, "pii-metamodel/examples/graph")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "recursive type")

	_, err := os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_NoSubjectID(t *testing.T) {
	out := filepath.Join(t.TempDir(), "metamodel.json")

	// Anonymous is the first holder of the package and has no subject id.
	code, _, stderr := runCLI(t, "-out", out, "pii-metamodel/examples/invalid")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no subject id field")
}

func TestRun_InvalidConfig(t *testing.T) {
	code, _, stderr := runCLI(t, "-format", "jsn", "./...")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error: invalid configuration: format: [invalid_format]")
	assert.Contains(t, stderr, "did you mean json?")

	code, _, stderr = runCLI(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no packages to scan")
}

func TestRun_PrintConfig(t *testing.T) {
	t.Setenv("PII_METAMODEL_IGNORE", "pii-metamodel/examples/graph.Node")

	code, stdout, stderr := runCLI(t, "-print-config", "-out", "gen/metamodel.yaml", "-tag", "gdpr",
		"pii-metamodel/examples/graph")
	require.Equal(t, 0, code, stderr)

	var printed struct {
		Packages []string `yaml:"packages"`
		Ignore   []string `yaml:"ignore"`
		Output   string   `yaml:"output"`
		TagKey   string   `yaml:"tagKey"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &printed))
	assert.Equal(t, []string{"pii-metamodel/examples/graph"}, printed.Packages)
	assert.Equal(t, []string{"pii-metamodel/examples/graph.Node"}, printed.Ignore)
	assert.Equal(t, "gen/metamodel.yaml", printed.Output)
	assert.Equal(t, "gdpr", printed.TagKey)

	_, err := os.Stat("gen")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_BadFlag(t *testing.T) {
	code, _, _ := runCLI(t, "-nope")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "-h")
	assert.Equal(t, 0, code)
}
