package identify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-manu/digipres-columns/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const plainTextOutput = `{"files": [{"filename": "notes.txt", "matches": [
	{"ns": "pronom", "id": "x-fmt/111", "format": "Plain Text File", "version": "1.0", "mime": "text/plain"}
]}]}`

// fakeTool writes a shell script standing in for sf and returns its path
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a shell script")
	}
	path := filepath.Join(t.TempDir(), "sf")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// fakeToolPrinting writes a tool that prints the given stdout and exits 0
func fakeToolPrinting(t *testing.T, stdout string) string {
	t.Helper()
	fixture := filepath.Join(t.TempDir(), "stdout.json")
	require.NoError(t, os.WriteFile(fixture, []byte(stdout), 0644))
	return fakeTool(t, `cat "`+fixture+`"`)
}

type recordingReporter struct {
	mx       sync.Mutex
	failures []*Failure
}

func (r *recordingReporter) Report(failure *Failure) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.failures = append(r.failures, failure)
}

func (r *recordingReporter) kinds() []FailureKind {
	r.mx.Lock()
	defer r.mx.Unlock()
	kinds := make([]FailureKind, 0, len(r.failures))
	for _, f := range r.failures {
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

func inspectKind(t *testing.T, identifier *Identifier, path string) FailureKind {
	t.Helper()
	result, err := identifier.Inspect(context.Background(), path)
	assert.True(t, result.IsEmpty())
	var failure *Failure
	require.True(t, errors.As(err, &failure), "expected a *Failure, got %v", err)
	assert.Equal(t, path, failure.Path)
	return failure.Kind
}

func TestIdentifyPlainText(t *testing.T) {
	reporter := &recordingReporter{}
	identifier := New(fakeToolPrinting(t, plainTextOutput), WithReporter(reporter))
	result := identifier.Identify(context.Background(), "/data/notes.txt")
	assert.Equal(t, entity.IdentificationResult{
		Identifier:   "x-fmt/111",
		DisplayName:  "Plain Text File 1.0",
		ReferenceURI: "http://www.nationalarchives.gov.uk/PRONOM/x-fmt/111",
	}, result)
	assert.Empty(t, reporter.kinds())
}

func TestIdentifyPronomURI(t *testing.T) {
	identifier := New(fakeToolPrinting(t,
		`{"files": [{"matches": [{"id": "fmt/43", "format": "JPEG File Interchange Format", "version": null}]}]}`))
	result, err := identifier.Inspect(context.Background(), "/data/page.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://www.nationalarchives.gov.uk/PRONOM/fmt/43", result.ReferenceURI)
	assert.Equal(t, "JPEG File Interchange Format", result.DisplayName)
}

func TestIdentifyPassesArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	tool := fakeTool(t, `printf '%s\n' "$@" > "`+argsFile+`"
echo '`+plainTextOutput+`'`)
	identifier := New(tool, WithArgs("-sig", "deluxe.sig"))
	_, err := identifier.Inspect(context.Background(), "/data/with space/notes.txt")
	require.NoError(t, err)
	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"-sig", "deluxe.sig", "-json", "/data/with space/notes.txt"},
		strings.Split(strings.TrimSpace(string(args)), "\n"))
}

func TestIdentifyNoMatchData(t *testing.T) {
	for _, stdout := range []string{
		`{"files": []}`,
		`{"files": [{"matches": []}]}`,
		`{"files": [{"matches": [null]}]}`,
		`{"files": [{"matches": [{"basis": "extension match"}]}]}`,
	} {
		reporter := &recordingReporter{}
		identifier := New(fakeToolPrinting(t, stdout), WithReporter(reporter))
		assert.Equal(t, NoMatchData, inspectKind(t, identifier, "/data/empty.bin"), stdout)
		assert.Equal(t, entity.IdentificationResult{}, identifier.Identify(context.Background(), "/data/empty.bin"))
		assert.Equal(t, []FailureKind{NoMatchData}, reporter.kinds(), stdout)
	}
}

func TestIdentifyToleratesUnusedFieldShapes(t *testing.T) {
	identifier := New(fakeToolPrinting(t,
		`{"identifiers": "pronom", "files": [{"filesize": "48213", "errors": ["x"], "matches": [{"id": "fmt/43", "format": "JPEG File Interchange Format"}]}]}`))
	result, err := identifier.Inspect(context.Background(), "/data/page.jpg")
	require.NoError(t, err)
	assert.Equal(t, "fmt/43", result.Identifier)
}

func TestIdentifyToolNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-sf")
	assert.Equal(t, ToolNotFound, inspectKind(t, New(missing), "/data/a.txt"))
	assert.Equal(t, ToolNotFound, inspectKind(t, New("digipres-no-such-binary-on-path"), "/data/a.txt"))
}

func TestIdentifyToolNotExecutable(t *testing.T) {
	tool := fakeTool(t, "echo '{}'")
	require.NoError(t, os.Chmod(tool, 0644))
	assert.Equal(t, ToolNotFound, inspectKind(t, New(tool), "/data/a.txt"))
}

func TestIdentifyToolExecutionError(t *testing.T) {
	tool := fakeTool(t, "echo 'open /data/locked.txt: permission denied' >&2\nexit 1")
	_, err := New(tool).Inspect(context.Background(), "/data/locked.txt")
	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, ToolExecutionError, failure.Kind)
	assert.Contains(t, err.Error(), "Error accessing file object")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestIdentifyMalformedOutput(t *testing.T) {
	identifier := New(fakeToolPrinting(t, "---\nfiles:\n  - matches: []\n"))
	assert.Equal(t, MalformedOutput, inspectKind(t, identifier, "/data/a.txt"))
}

func TestIdentifyTimeout(t *testing.T) {
	identifier := New(fakeTool(t, "exec sleep 5"), WithTimeout(100*time.Millisecond))
	start := time.Now()
	assert.Equal(t, Timeout, inspectKind(t, identifier, "/data/huge.iso"))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestIdentifyCancelledByCaller(t *testing.T) {
	identifier := New(fakeToolPrinting(t, plainTextOutput))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := identifier.Inspect(ctx, "/data/notes.txt")
	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, ToolExecutionError, failure.Kind)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestIdentifyCallerDeadlineIsNotTimeout(t *testing.T) {
	identifier := New(fakeTool(t, "exec sleep 5"))
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := identifier.Inspect(ctx, "/data/huge.iso")
	assert.Less(t, time.Since(start), 4*time.Second)
	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, ToolExecutionError, failure.Kind)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestIdentifyReportsFailuresDistinctly(t *testing.T) {
	reporter := &recordingReporter{}
	cases := []string{
		filepath.Join(t.TempDir(), "missing-sf"),
		fakeTool(t, "exit 2"),
		fakeToolPrinting(t, "<xml/>"),
		fakeToolPrinting(t, `{"files": []}`),
	}
	for _, tool := range cases {
		result := New(tool, WithReporter(reporter)).Identify(context.Background(), "/data/a.txt")
		assert.Equal(t, entity.IdentificationResult{}, result)
	}
	assert.Equal(t, []FailureKind{ToolNotFound, ToolExecutionError, MalformedOutput, NoMatchData}, reporter.kinds())
}

func TestIdentifyIsSafeForConcurrentUse(t *testing.T) {
	identifier := New(fakeToolPrinting(t, plainTextOutput))
	var wg sync.WaitGroup
	results := make([]entity.IdentificationResult, 8)
	for i := range results {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			results[index] = identifier.Identify(context.Background(), "/data/notes.txt")
		}(i)
	}
	wg.Wait()
	for _, result := range results {
		assert.Equal(t, "x-fmt/111", result.Identifier)
	}
}

func TestFailureMessages(t *testing.T) {
	tests := map[FailureKind]string{
		ToolNotFound:       "Siegfried not installed",
		ToolExecutionError: "Error accessing file object",
		MalformedOutput:    "Cannot parse SF data",
		NoMatchData:        "Cannot access sf data for file: /data/a.txt",
		Timeout:            "Siegfried timed out on file: /data/a.txt",
	}
	for kind, expected := range tests {
		failure := &Failure{Kind: kind, Path: "/data/a.txt"}
		assert.Equal(t, expected, failure.Message())
		assert.Equal(t, expected, failure.Error())
	}
}

func TestZapReporter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	identifier := New(fakeToolPrinting(t, `{"files": []}`), WithReporter(NewZapReporter(zap.New(core))))
	identifier.Identify(context.Background(), "/data/a.txt")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Cannot access sf data for file: /data/a.txt", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "no_match_data", fields["kind"])
	assert.Equal(t, "/data/a.txt", fields["path"])
}

func TestAvailable(t *testing.T) {
	assert.NoError(t, New(fakeTool(t, "exit 0")).Available())
	err := New(filepath.Join(t.TempDir(), "missing-sf")).Available()
	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, ToolNotFound, failure.Kind)
}
