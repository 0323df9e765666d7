package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI in-process with stdin as the piped input.
func execute(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Validate(t *testing.T) {
	code, stdout, stderr := execute(t, "", "validate", `{"name": "Ada", "tags": ["x"]}`)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, true, result["isValid"])
	assert.Equal(t, []any{}, result["errors"])
	assert.Equal(t, float64(2), result["depth"])
	assert.Contains(t, stdout, "\n  \"isValid\": true")
}

func TestRun_ValidateInvalid(t *testing.T) {
	code, stdout, stderr := execute(t, "", "validate", `{"a":1,}`)

	assert.Equal(t, 1, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, `"isValid": false`)
	assert.Contains(t, stdout, `Syntax error: `)
	assert.NotContains(t, stdout, `"formatted"`)
}

func TestRun_Format(t *testing.T) {
	code, stdout, _ := execute(t, "", "format", `{"a":[1]}`, "4")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\n    \"a\": [\n        1\n    ]\n}\n", stdout)

	code, stdout, _ = execute(t, "", "format", `{"a":[1]}`)
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}\n", stdout)
}

func TestRun_FormatIndentWithPipedInput(t *testing.T) {
	code, stdout, stderr := execute(t, `{"a":[1]}`, "format", "4")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "{\n    \"a\": [\n        1\n    ]\n}\n", stdout)
}

func TestRun_FormatIndentWithInputFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(input, []byte(`[1]`), 0644))

	code, stdout, stderr := execute(t, "", "-i", input, "format", "3")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "[\n   1\n]\n", stdout)
}

func TestRun_FormatBadIndent(t *testing.T) {
	code, _, stderr := execute(t, "", "format", `{}`, "wide")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Input error: indent must be a number, got 'wide'")
}

func TestRun_MinifyFromStdin(t *testing.T) {
	code, stdout, _ := execute(t, " { \"a\" : [ 1 , 2 ] }\n", "minify")

	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"a\":[1,2]}\n", stdout)
}

func TestRun_Analyze(t *testing.T) {
	code, stdout, _ := execute(t, "", "analyze", `{"a":1,"b":[1,2,3]}`)
	require.Equal(t, 0, code)

	var analysis struct {
		Keys         []string          `json:"keys"`
		Types        map[string]string `json:"types"`
		ArrayLengths map[string]int    `json:"arrayLengths"`
		Depth        int               `json:"depth"`
		Size         int               `json:"size"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &analysis))
	assert.Equal(t, []string{"a", "b"}, analysis.Keys)
	assert.Equal(t, "array", analysis.Types["b"])
	assert.Equal(t, 3, analysis.ArrayLengths["b"])
	assert.Equal(t, len(`{"a":1,"b":[1,2,3]}`), analysis.Size)
}

func TestRun_Schema(t *testing.T) {
	code, stdout, _ := execute(t, "", "schema", `{"n":1}`)

	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{"type":"object","properties":{"n":{"type":"number"}},"required":["n"]}`, stdout)
}

func TestRun_Path(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"scalar", []string{"path", "a.b", `{"a":{"b":2}}`}, "2\n"},
		{"absent", []string{"path", "a.c", `{"a":1}`}, "undefined\n"},
		{"array index segment", []string{"path", "tags.[1]", `{"tags":["x","y"]}`}, "\"y\"\n"},
		{"combined segment", []string{"path", "tags[1]", `{"tags":["x","y"]}`}, "undefined\n"},
		{"object", []string{"path", "a", `{"a":{"b":2}}`}, "{\n  \"b\": 2\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := execute(t, "", tt.args...)
			assert.Equal(t, 0, code)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestRun_PathInvalidJSON(t *testing.T) {
	code, stdout, stderr := execute(t, "", "path", "a", "not json")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Path error: failed to parse JSON: invalid character")
	assert.Contains(t, stderr, "For help, run: jsonlens --help")
}

func TestRun_Query(t *testing.T) {
	code, stdout, _ := execute(t, "", "query", "items.#.id", `{"items":[{"id":1},{"id":2}]}`)
	assert.Equal(t, 0, code)
	assert.Equal(t, "[1,2]\n", stdout)

	code, stdout, _ = execute(t, "", "query", "missing", `{}`)
	assert.Equal(t, 0, code)
	assert.Equal(t, "undefined\n", stdout)
}

func TestRun_QueryDuplicateKeysMatchPath(t *testing.T) {
	doc := `{"a":1,"a":2}`

	_, queried, _ := execute(t, "", "query", "a", doc)
	_, resolved, _ := execute(t, "", "path", "a", doc)

	assert.Equal(t, "2\n", queried)
	assert.Equal(t, resolved, queried)
}

func TestRun_InputAndOutputFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.json")
	output := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(input, []byte(`[ 1, 2 ]`), 0644))

	code, stdout, stderr := execute(t, "", "-i", input, "-o", output, "minify")

	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Output written to "+output)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "[1,2]\n", string(written))
}

func TestRun_ArgumentWinsOverInputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"from":"file"}`), 0644))

	code, stdout, _ := execute(t, `{"from":"stdin"}`, "--input", input, "minify", `{"from":"arg"}`)

	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"from\":\"arg\"}\n", stdout)
}

func TestRun_MissingInputFile(t *testing.T) {
	code, _, stderr := execute(t, "", "-i", filepath.Join(t.TempDir(), "missing.json"), "validate")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Input error:")
}

func TestRun_EmptyStdin(t *testing.T) {
	code, _, stderr := execute(t, "  \n", "analyze")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Input error: empty input received from stdin")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "jsonlens.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("limits:\n  max_array_length: 2\nscan:\n  root_label: doc\n"), 0644))

	code, stdout, _ := execute(t, "", "-c", cfgPath, "validate", `{"a":[1,2,3]}`)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "doc.a: array too large (3 elements, max 2)")
}

func TestRun_BadConfigFile(t *testing.T) {
	code, _, stderr := execute(t, "", "-c", filepath.Join(t.TempDir(), "nope.yml"), "validate", `{}`)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Config error: failed to read config file")
}

func TestRun_DebugLogging(t *testing.T) {
	code, _, stderr := execute(t, "", "-d", "validate", `{}`)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "level=DEBUG")

	code, _, stderr = execute(t, "", "validate", `{}`)
	assert.Equal(t, 0, code)
	assert.NotContains(t, stderr, "level=DEBUG")
}

func TestRun_UsageHint(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"unknown command", []string{"explode", "{}"}},
		{"flags only", []string{"-d"}},
		{"value flag without command", []string{"-i", "validate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, "", tt.args...)
			assert.Equal(t, 0, code)
			assert.Empty(t, stderr)
			assert.Contains(t, stdout, "Usage: jsonlens [flags] <command> [args]")
			assert.Contains(t, stdout, "validate, format, minify, analyze, schema, path, query")
		})
	}
}

func TestRun_MissingArgument(t *testing.T) {
	code, _, stderr := execute(t, "", "path")

	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr)
}

func TestHasCommand(t *testing.T) {
	commands := []string{"validate", "path"}

	assert.True(t, hasCommand([]string{"validate"}, commands))
	assert.True(t, hasCommand([]string{"-d", "-o", "out.json", "path", "a"}, commands))
	assert.True(t, hasCommand([]string{"--input=in.json", "validate"}, commands))
	assert.True(t, hasCommand([]string{"--version"}, commands))
	assert.True(t, hasCommand([]string{"-h"}, commands))
	assert.False(t, hasCommand([]string{"-c", "validate"}, commands))
	assert.False(t, hasCommand([]string{"lint"}, commands))
	assert.False(t, hasCommand(nil, commands))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, false).Debug("hidden")
	newLogger(&buf, false).Warn("shown")
	newLogger(&buf, true).Debug("debugging")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "msg=debugging")
}
