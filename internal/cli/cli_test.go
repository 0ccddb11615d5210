package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	err    error
	stdout string
	stderr string
}

// runCLI runs linediff with args in an isolated config environment, feeding stdin.
func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code, err := Run(append([]string{"linediff"}, args...), &RunOptions{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
		Dir: t.TempDir(),
	})
	return result{code: code, err: err, stdout: out.String(), stderr: errOut.String()}
}

// isolate keeps the user's config and environment out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("LINEDIFF_CONFIG", filepath.Join(t.TempDir(), "none.toml"))
	for _, k := range []string{"LINEDIFF_ALGORITHM", "LINEDIFF_FORMAT", "LINEDIFF_COLOR", "LINEDIFF_CONTEXT", "LINEDIFF_MAX_LINES", "LINEDIFF_TAB_WIDTH", "LINEDIFF_LOG_FILE"} {
		t.Setenv(k, "")
	}
}

// files writes old and new into a temp dir and returns their paths.
func files(t *testing.T, oldContent, newContent string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(oldPath, []byte(oldContent), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte(newContent), 0o644))
	return oldPath, newPath
}

func TestRun_Help(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "-h")
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "linediff [flags] OLD NEW")
	assert.Empty(t, r.stderr)
}

func TestRun_Version(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "--version")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, Version)
}

func TestRun_Report(t *testing.T) {
	isolate(t)
	oldPath, newPath := files(t, "a\nb\nc\n", "a\nx\nc\n")

	for _, algorithm := range []string{"lcs", "myers", "naive"} {
		t.Run(algorithm, func(t *testing.T) {
			r := runCLI(t, "", "-a", algorithm, oldPath, newPath)
			require.NoError(t, r.err)
			assert.Equal(t, 0, r.code)
			assert.Equal(t, "File: "+newPath+"\n a\n-b\n+x\n c\nEnd of file comparison\n", r.stdout)
		})
	}
}

func TestRun_ExitCode(t *testing.T) {
	isolate(t)
	oldPath, newPath := files(t, "a\n", "b\n")

	r := runCLI(t, "", "--exit-code", "-f", "summary", oldPath, newPath)
	assert.Equal(t, 1, r.code)
	require.Error(t, r.err)
	assert.Empty(t, r.stderr)
	assert.Equal(t, newPath+": 1 chunk, +1 -1\n", r.stdout)

	r = runCLI(t, "", "--exit-code", "-f", "summary", oldPath, oldPath)
	assert.Equal(t, 0, r.code)
	require.NoError(t, r.err)
}

func TestRun_Unified(t *testing.T) {
	isolate(t)
	oldPath, newPath := files(t, "a\nb\nc\n", "a\nx\nc\n")

	r := runCLI(t, "", "-f", "unified", "-U", "0", oldPath, newPath)
	require.NoError(t, r.err)
	exp := "--- " + oldPath + "\n+++ " + newPath + "\n@@ -2,1 +2,1 @@\n-b\n+x\n"
	assert.Equal(t, exp, r.stdout)

	r = runCLI(t, "", "-f", "unified", oldPath, oldPath)
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
}

func TestRun_ColorAlways(t *testing.T) {
	isolate(t)
	oldPath, newPath := files(t, "a\n", "b\n")

	r := runCLI(t, "", "--color", "always", oldPath, newPath)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "\x1b[31m-a\x1b[0m")
	assert.Contains(t, r.stdout, "\x1b[32m+b\x1b[0m")

	// Buffers are not terminals, so auto means no color.
	r = runCLI(t, "", oldPath, newPath)
	require.NoError(t, r.err)
	assert.NotContains(t, r.stdout, "\x1b[")
}

func TestRun_UsageErrors(t *testing.T) {
	isolate(t)
	oldPath, newPath := files(t, "a\n", "b\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no args", args: nil, wantErr: "expects 2 arguments"},
		{name: "one arg", args: []string{oldPath}, wantErr: "expects 2 arguments"},
		{name: "unknown flag", args: []string{"--bogus", oldPath, newPath}, wantErr: "bogus"},
		{name: "unknown algorithm", args: []string{"-a", "histogram", oldPath, newPath}, wantErr: "algorithm"},
		{name: "patience", args: []string{"-a", "patience", oldPath, newPath}, wantErr: "not yet implemented"},
		{name: "bad format", args: []string{"-f", "html", oldPath, newPath}, wantErr: "format"},
		{name: "negative width", args: []string{"--width", "-1", oldPath, newPath}, wantErr: "--width"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := runCLI(t, "", tc.args...)
			require.Error(t, r.err)
			assert.Equal(t, 2, r.code)
			assert.Contains(t, r.stderr, tc.wantErr)
			assert.Contains(t, r.stderr, "--help")
		})
	}
}

func TestRun_RuntimeErrors(t *testing.T) {
	isolate(t)
	oldPath, newPath := files(t, "a\nb\n", "c\nd\n")

	r := runCLI(t, "", oldPath, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "missing.txt")

	r = runCLI(t, "", "--max-lines", "3", oldPath, newPath)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "input too large")

	// Naive is linear and ignores the limit.
	r = runCLI(t, "", "-a", "naive", "--max-lines", "3", oldPath, newPath)
	assert.Equal(t, 0, r.code)
}

func TestRun_ConfigCascade(t *testing.T) {
	isolate(t)
	userFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(userFile, []byte("format = \"summary\"\n"), 0o644))
	t.Setenv("LINEDIFF_CONFIG", userFile)
	oldPath, newPath := files(t, "a\n", "b\n")

	r := runCLI(t, "", oldPath, newPath)
	require.NoError(t, r.err)
	assert.Equal(t, newPath+": 1 chunk, +1 -1\n", r.stdout)

	// Flags win.
	r = runCLI(t, "", "-f", "report", oldPath, newPath)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "End of file comparison")

	r = runCLI(t, "", "config")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "# from "+userFile)
	assert.Contains(t, r.stdout, "format = \"summary\"")
}

func TestRun_BadConfigFile(t *testing.T) {
	isolate(t)
	userFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(userFile, []byte("nope = 1\n"), 0o644))
	t.Setenv("LINEDIFF_CONFIG", userFile)

	r := runCLI(t, "", "config")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "unknown keys: nope")
}

func TestRun_Algorithms(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "algorithms")
	require.NoError(t, r.err)
	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "0  naive     Naive", lines[0])
	assert.Equal(t, "3  patience  Patience (not yet implemented)", lines[3])
}

func TestRun_Interactive(t *testing.T) {
	isolate(t)
	oldPath, newPath := files(t, "a\nb\n", "x\na\nb\n")

	r := runCLI(t, "0\n3\nnope\nlcs\nq\n", "interactive", "-f", "summary", oldPath, newPath)
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "0: Naive\n1: LCS\n2: Myers\n3: Patience\n")
	assert.Contains(t, r.stdout, newPath+": 3 chunks, +3 -2")
	assert.Contains(t, r.stdout, "Patience: not yet implemented")
	assert.Contains(t, r.stdout, "Invalid algorithm")
	assert.Contains(t, r.stdout, newPath+": 1 chunk, +1 -0")
}

func TestRun_Trace(t *testing.T) {
	isolate(t)
	logFile := filepath.Join(t.TempDir(), "trace.log")
	t.Setenv("LINEDIFF_LOG_FILE", logFile)
	oldPath, newPath := files(t, "a\n", "b\n")

	r := runCLI(t, "", "--trace", "-a", "lcs", oldPath, newPath)
	require.NoError(t, r.err)
	assert.Empty(t, r.stderr)

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "linediff: lcs "+oldPath+" -> "+newPath)
	assert.Contains(t, string(b), "lcs: 2 x 2 table")
}

func TestRun_TraceWithoutLogFileWarns(t *testing.T) {
	isolate(t)
	oldPath, newPath := files(t, "a\n", "b\n")

	r := runCLI(t, "", "--trace", oldPath, newPath)
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "LINEDIFF_LOG_FILE")
}

func TestRun_WatchStartupErrors(t *testing.T) {
	isolate(t)
	oldPath, _ := files(t, "a\n", "b\n")

	r := runCLI(t, "", "watch", oldPath, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "missing.txt")

	r = runCLI(t, "", "watch", oldPath)
	assert.Equal(t, 2, r.code)
}
