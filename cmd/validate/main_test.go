package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_WrongArgCountReturnsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"only-one-arg"}, &stdout, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "usage:")
}

func TestRun_MissingDBFReturnsFileIOError(t *testing.T) {
	dir := t.TempDir()
	batchPath := filepath.Join(dir, "batch.json")
	assert.NoError(t, os.WriteFile(batchPath, []byte(`{"completed_registrations":[]}`), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(dir, "missing.dbf"), batchPath}, &stdout, &stderr)
	assert.Equal(t, exitFileIO, code)
}

func TestRun_MissingBatchReturnsFileIOError(t *testing.T) {
	dir := t.TempDir()
	dbfPath := filepath.Join(dir, "personnel.dbf")
	assert.NoError(t, os.WriteFile(dbfPath, []byte{}, 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{dbfPath, filepath.Join(dir, "missing.json")}, &stdout, &stderr)
	assert.Equal(t, exitFileIO, code)
}

func TestRun_MalformedDBFReturnsLoadError(t *testing.T) {
	dir := t.TempDir()
	dbfPath := filepath.Join(dir, "personnel.dbf")
	batchPath := filepath.Join(dir, "batch.json")
	assert.NoError(t, os.WriteFile(dbfPath, []byte("not a dbf"), 0o644))
	assert.NoError(t, os.WriteFile(batchPath, []byte(`{"completed_registrations":[]}`), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{dbfPath, batchPath}, &stdout, &stderr)
	assert.Equal(t, exitLoad, code)
}
