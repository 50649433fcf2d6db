package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const complexDocument = `{
	"id": 12345,
	"uuid": "550e8400-e29b-41d4-a716-446655440000",
	"created_at": "2023-05-20T14:56:23Z",
	"updated_at": null,
	"config": {
		"enabled": true,
		"timeout_seconds": 30,
		"features": ["logging", "metrics", "alerting"],
		"rate_limits": {
			"per_second": 100,
			"per_minute": 1000,
			"burst": 150
		},
		"environments": {
			"development": {"debug": true, "log_level": "debug"},
			"production": {"debug": false, "log_level": "info"}
		}
	},
	"users": [
		{"id": 1, "name": "Alice", "roles": ["admin", "user"]},
		{"id": 2, "name": "Bob", "roles": ["user"]}
	],
	"stats": {
		"requests": 1234567,
		"success_rate": 0.9999,
		"response_times": [0.045, 0.067, 0.032, 0.051]
	},
	"active": true
}`

// run executes the CLI and returns stdout, failing the test with stderr on error
func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../.."}, args...)...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), "CLI command failed: %s", stderr.String())
	return stdout.String()
}

// TestEndToEnd_FormatCompressRoundTrip checks that formatting and compressing
// keep member order and values intact
func TestEndToEnd_FormatCompressRoundTrip(t *testing.T) {
	formatted := run(t, complexDocument, "format")
	compressed := run(t, formatted, "compress")

	assert.Equal(t, 1, strings.Count(compressed, "\n"))
	assert.True(t, strings.HasPrefix(compressed, `{"id":12345,"uuid":`))
	assert.Contains(t, compressed, `"response_times":[0.045,0.067,0.032,0.051]`)

	var want, got interface{}
	require.NoError(t, json.Unmarshal([]byte(complexDocument), &want))
	require.NoError(t, json.Unmarshal([]byte(compressed), &got))
	assert.Equal(t, want, got)
}

func TestEndToEnd_SortThenDiffIsEqual(t *testing.T) {
	tempDir := t.TempDir()
	original := filepath.Join(tempDir, "original.json")
	sorted := filepath.Join(tempDir, "sorted.json")
	require.NoError(t, os.WriteFile(original, []byte(complexDocument), 0644))
	require.NoError(t, os.WriteFile(sorted, []byte(run(t, complexDocument, "sort")), 0644))

	// Member order counts unless both sides are sorted first
	assert.NotEqual(t, "No differences found\n", run(t, "", "diff", original, sorted))
	assert.Equal(t, "No differences found\n", run(t, "", "diff", "--sort", original, sorted))
}

func TestEndToEnd_DiffNestedChanges(t *testing.T) {
	changed := strings.NewReplacer(
		`"burst": 150`, `"burst": 200`,
		`"log_level": "info"`, `"log_level": "warn"`,
		`"active": true`, `"active": true, "region": "eu"`,
	).Replace(complexDocument)

	tempDir := t.TempDir()
	left := filepath.Join(tempDir, "left.json")
	right := filepath.Join(tempDir, "right.json")
	require.NoError(t, os.WriteFile(left, []byte(complexDocument), 0644))
	require.NoError(t, os.WriteFile(right, []byte(changed), 0644))

	var report struct {
		IsEqual     bool `json:"isEqual"`
		Differences []struct {
			Path string `json:"path"`
			Kind string `json:"kind"`
		} `json:"differences"`
	}
	require.NoError(t, json.Unmarshal([]byte(run(t, "", "diff", "-f", "json", left, right)), &report))

	assert.False(t, report.IsEqual)
	require.Len(t, report.Differences, 3)
	assert.Equal(t, "config.rate_limits.burst", report.Differences[0].Path)
	assert.Equal(t, "config.environments.production.log_level", report.Differences[1].Path)
	assert.Equal(t, "region", report.Differences[2].Path)
	assert.Equal(t, "added", report.Differences[2].Kind)
}

func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		expected string
		isError  bool
	}{
		{name: "EmptyObject", json: `{}`, expected: "{}\n"},
		{name: "EmptyArray", json: `[]`, expected: "[]\n"},
		{name: "SingleValue", json: `"just a string"`, expected: "\"just a string\"\n"},
		{name: "SingleNumber", json: `4.20e1`, expected: "42\n"},
		{name: "BigInteger", json: `12345678901234567890`, expected: "12345678901234567890\n"},
		{name: "SingleBoolean", json: `true`, expected: "true\n"},
		{name: "SingleNull", json: `null`, expected: "null\n"},
		{name: "DuplicateKeys", json: `{"a":1,"b":2,"a":3}`, expected: "{\"a\":3,\"b\":2}\n"},
		{name: "DeeplyNestedArray", json: `[[[[[[42]]]]]]`, expected: "[[[[[[42]]]]]]\n"},
		{name: "InvalidJSON", json: `{"name": "Invalid JSON",}`, isError: true},
		{name: "MultipleValues", json: `{} {}`, isError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command("go", "run", "../..", "compress")
			cmd.Stdin = strings.NewReader(tc.json)
			var stdout bytes.Buffer
			cmd.Stdout = &stdout
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			err := cmd.Run()

			if tc.isError {
				assert.Error(t, err, "Expected an error for %s", tc.name)
				assert.Contains(t, stderr.String(), "JSON parsing error")
			} else {
				assert.NoError(t, err, "Unexpected error for %s: %s", tc.name, stderr.String())
				assert.Equal(t, tc.expected, stdout.String(), "Unexpected output for %s", tc.name)
			}
		})
	}
}
