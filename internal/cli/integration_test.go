package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// devkit runs the CLI with the given stdin and returns stdout, stderr and the run error
func devkit(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../.."}, args...)...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestCLI_FormatFileToFile tests the CLI with file input and output
func TestCLI_FormatFileToFile(t *testing.T) {
	tempDir := t.TempDir()
	jsonFile := writeFile(t, tempDir, "test.json", `{"name":"John Doe","address":{"zip":"12345","city":"Anytown"},"phones":[{"type":"home"}]}`)
	outputFile := filepath.Join(tempDir, "output.json")

	_, stderr, err := devkit(t, "", "-o", outputFile, "format", "-i", jsonFile, "--sort")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	formatted, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	expected := `{
  "address": {
    "city": "Anytown",
    "zip": "12345"
  },
  "name": "John Doe",
  "phones": [
    {
      "type": "home"
    }
  ]
}
`
	assert.Equal(t, expected, string(formatted))
}

func TestCLI_StdinStdout(t *testing.T) {
	stdout, stderr, err := devkit(t, `{"b": 1, "a": 2}`, "compress")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "{\"b\":1,\"a\":2}\n", stdout)
}

func TestCLI_Diff(t *testing.T) {
	tempDir := t.TempDir()
	left := writeFile(t, tempDir, "left.json", `{"user":{"name":"Alice","roles":["admin"]},"active":true}`)
	right := writeFile(t, tempDir, "right.json", `{"user":{"name":"Alice","roles":["admin","dev"]},"version":2}`)

	stdout, stderr, err := devkit(t, "", "--no-color", "diff", left, right)
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, strings.Join([]string{
		`~ user.roles: ["admin"] -> ["admin","dev"]`,
		`- active: true`,
		`+ version: 2`,
		`3 differences (1 added, 1 removed, 1 modified)`,
		``,
	}, "\n"), stdout)

	_, _, err = devkit(t, "", "diff", "--exit-code", left, right)
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	stdout, _, err = devkit(t, "", "diff", "--exit-code", left, left)
	require.NoError(t, err)
	assert.Equal(t, "No differences found\n", stdout)
}

func TestCLI_DiffConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	left := writeFile(t, tempDir, "left.json", `{"a":1,"b":2}`)
	right := writeFile(t, tempDir, "right.json", `{"b":2,"a":1}`)
	cfg := writeFile(t, tempDir, "devkit.yml", "diff:\n  sort_first: true\n  output: json\n")

	stdout, stderr, err := devkit(t, "", "-c", cfg, "diff", left, right)
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Contains(t, stdout, `"isEqual": true`)
}

func TestCLI_Search(t *testing.T) {
	stdout, stderr, err := devkit(t, `{"users":[{"email":"a@example.com"},{"email":"b@test.org"}]}`, "search", "EXAMPLE")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "users[0].email: \"a@example.com\"\n1 match\n", stdout)
}

func TestCLI_InvalidJSON(t *testing.T) {
	_, stderr, err := devkit(t, `{"name": "test",}`, "validate")
	assert.Error(t, err)
	assert.Contains(t, stderr, "JSON parsing error")
}

func TestCLI_EmptyInput(t *testing.T) {
	_, stderr, err := devkit(t, "   ", "format")
	assert.Error(t, err)
	assert.Contains(t, stderr, "empty")
}

func TestCLI_EnvOverride(t *testing.T) {
	cmd := exec.Command("go", "run", "../..", "format")
	cmd.Env = append(os.Environ(), "DEVKIT_JSON_INDENT=4")
	cmd.Stdin = strings.NewReader(`{"a":1}`)
	output, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1\n}\n", string(output))

	cmd = exec.Command("go", "run", "../..", "format")
	cmd.Env = append(os.Environ(), "DEVKIT_JSON_INDENT=wide")
	cmd.Stdin = strings.NewReader(`{"a":1}`)
	output, err = cmd.CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "Configuration error")
}

func TestCLI_Codecs(t *testing.T) {
	stdout, _, err := devkit(t, "", "base64", "encode", "hello")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=\n", stdout)

	stdout, _, err = devkit(t, "", "url", "encode", "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "a%2Fb%20c\n", stdout)

	stdout, _, err = devkit(t, "", "hash", "-a", "sha1", "abc")
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d\n", stdout)

	stdout, _, err = devkit(t, "", "time", "timestamp", "0", "--zone", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01 00:00:00\n", stdout)
}

func TestCLI_Version(t *testing.T) {
	stdout, _, err := devkit(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "devkit version")
}

func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../..", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	help := string(output)
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "diff")
	assert.Contains(t, help, "search")
	assert.Contains(t, help, "--config")
}
