package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-substrate/json-wtf/jsonerr"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runWith(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestWriteClassifiedErrorWrapped(t *testing.T) {
	inner := jsonerr.New(jsonerr.InvalidUTF8Char, 3, "bad byte")
	err := fmt.Errorf("outer: %w", inner)
	var stderr bytes.Buffer
	code := writeClassifiedError(log.NewLogfmtLogger(&stderr), err)
	assert.Equal(t, jsonerr.ExitRejected, code)
	assert.Contains(t, stderr.String(), "class=INVALID_UTF8_CHAR")
}

func TestWriteClassifiedErrorFallback(t *testing.T) {
	var stderr bytes.Buffer
	code := writeClassifiedError(log.NewLogfmtLogger(&stderr), fmt.Errorf("unclassified failure"))
	assert.Equal(t, jsonerr.ExitInternal, code)
	assert.Contains(t, stderr.String(), "class=INTERNAL_ERROR")
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"frobnicate"},
		{"check"},
		{"verify", "a", "b"},
		{"--log.level=loud", "verify"},
	} {
		res := runWith(t, "", args...)
		assert.Equal(t, jsonerr.ExitUsage, res.code, "args %q", args)
		assert.Contains(t, res.stderr, "class=CLI_USAGE", "args %q", args)
	}
}

func TestHelpExitsZero(t *testing.T) {
	res := runWith(t, "", "--help")
	assert.Equal(t, jsonerr.ExitSuccess, res.code)
	assert.Contains(t, res.stderr, "canonicalize")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "y_array.json", `[1, "\udead", {"a": null}]`)
	bad := writeFile(t, dir, "n_trailing_comma.json", `[1,]`)

	res := runWith(t, "", "check", good)
	require.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
	assert.Equal(t, good+": ok\n", res.stdout)

	res = runWith(t, "", "check", good, bad)
	assert.Equal(t, jsonerr.ExitRejected, res.code)
	assert.Equal(t, good+": ok\n", res.stdout)
	assert.Contains(t, res.stderr, "class=UNEXPECTED_START_OF_VALUE")
	assert.Contains(t, res.stderr, "path="+bad)

	res = runWith(t, "", "--quiet", "check", good)
	assert.Equal(t, jsonerr.ExitSuccess, res.code)
	assert.Empty(t, res.stdout)
}

func TestCheckMissingFileIsUsage(t *testing.T) {
	res := runWith(t, "", "check", filepath.Join(t.TempDir(), "absent.json"))
	assert.Equal(t, jsonerr.ExitUsage, res.code)
	assert.Contains(t, res.stderr, "class=CLI_USAGE")
}

func TestCheckManyFiles(t *testing.T) {
	dir := t.TempDir()
	var args []string
	for i := range 50 {
		args = append(args, writeFile(t, dir, fmt.Sprintf("y_%02d.json", i), fmt.Sprintf("[%d]", i)))
	}
	res := runWith(t, "", append([]string{"check"}, args...)...)
	require.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)

	lines := strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n")
	require.Len(t, lines, len(args))
	for i, line := range lines {
		assert.Equal(t, args[i]+": ok", line)
	}
}

func TestCanonicalizeStdin(t *testing.T) {
	res := runWith(t, ` {"b": 1, "a": [1.0, -0, 1e21, "\u00e9"], "a": true} `, "canonicalize")
	require.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "{\"a\":true,\"b\":1}\n", res.stdout)

	res = runWith(t, `[1.0, -0, 1e21, "\u00e9", "\udead"]`, "canonicalize", "-")
	require.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "[1,-0,1e+21,\"\u00e9\",\"\\udead\"]\n", res.stdout)
}

func TestDashReadsStdin(t *testing.T) {
	res := runWith(t, "[1]", "canonicalize", "-")
	require.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "[1]\n", res.stdout)

	res = runWith(t, "[1]", "verify", "-")
	assert.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "ok\n", res.stderr)

	out := filepath.Join(t.TempDir(), "out.json")
	res = runWith(t, `{"b":0,"a":0}`, "canonicalize", "-o", out, "-")
	require.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":0,\"b\":0}\n", string(got))
}

func TestNoArgumentsIsUsage(t *testing.T) {
	res := runWith(t, "")
	assert.Equal(t, jsonerr.ExitUsage, res.code)
	assert.Contains(t, res.stderr, "class=CLI_USAGE")
	assert.Contains(t, res.stderr, "canonicalize")
}

func TestCanonicalizeToFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.json", `{"z": [], "y": {}}`)
	out := filepath.Join(dir, "out.json")

	res := runWith(t, "", "canonicalize", "-o", out, in)
	require.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\"y\":{},\"z\":[]}\n", string(got))

	res = runWith(t, "", "verify", out)
	assert.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
}

func TestCanonicalizeRejects(t *testing.T) {
	res := runWith(t, `{"a" 1}`, "canonicalize")
	assert.Equal(t, jsonerr.ExitRejected, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "class=EXPECTED_COLON")
}

func TestVerify(t *testing.T) {
	res := runWith(t, `{"a":1,"b":[true,null]}`, "verify")
	assert.Equal(t, jsonerr.ExitSuccess, res.code)
	assert.Equal(t, "ok\n", res.stderr)

	res = runWith(t, "[1]\n", "--quiet", "verify")
	assert.Equal(t, jsonerr.ExitSuccess, res.code)
	assert.Empty(t, res.stderr)

	res = runWith(t, `{"b":1,"a":2}`, "verify")
	assert.Equal(t, jsonerr.ExitRejected, res.code)
	assert.Contains(t, res.stderr, "class=NOT_CANONICAL")

	res = runWith(t, `[1,`, "verify")
	assert.Equal(t, jsonerr.ExitRejected, res.code)
	assert.Contains(t, res.stderr, "class=UNEXPECTED_EOF")
}

func TestLimits(t *testing.T) {
	res := runWith(t, `[[[1]]]`, "--max-depth=2", "canonicalize")
	assert.Equal(t, jsonerr.ExitRejected, res.code)
	assert.Contains(t, res.stderr, "class=DEPTH_EXCEEDED")

	res = runWith(t, `[[[1]]]`, "--max-depth=3", "canonicalize")
	assert.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)

	res = runWith(t, `[1, 2, 3]`, "--max-input-size=4B", "canonicalize")
	assert.Equal(t, jsonerr.ExitRejected, res.code)
	assert.Contains(t, res.stderr, "class=INPUT_TOO_LARGE")

	res = runWith(t, `[1, 2, 3]`, "--max-input-size=0", "canonicalize")
	assert.Equal(t, jsonerr.ExitSuccess, res.code, res.stderr)
}

func TestDebugLogging(t *testing.T) {
	res := runWith(t, `[1]`, "--log.level=debug", "verify")
	assert.Equal(t, jsonerr.ExitSuccess, res.code)
	assert.Contains(t, res.stderr, `msg="read input"`)
	assert.Contains(t, res.stderr, `size="3 B"`)
}
