package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/app"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	_ "github.com/sr-consultoria/farmreport/internal/testing/guard"
)

var fixedNow = time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newCommand(&renderCmd{
		stdout: &stdout,
		stderr: &stderr,
		now:    func() time.Time { return fixedNow },
		config: func() (*app.Config, error) { return nil, errors.New("no env") },
	})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(reportdata.Sample(fixedNow))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestSampleWritesJSON(t *testing.T) {
	out, _, err := execute(t, "--sample")
	require.NoError(t, err)
	var data reportdata.ReportData
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.NotEmpty(t, data.OrganizationName)
}

func TestValidateOnly(t *testing.T) {
	out, _, err := execute(t, "--input", writeSample(t), "--validate-only")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "valid: "+string(reportdata.SectionProperties)))
}

func TestInvalidInputListsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"organizationName":""}`), 0o644))
	_, stderr, err := execute(t, "--input", path, "--validate-only")
	require.ErrorIs(t, err, reportdata.ErrInvalid)
	assert.Contains(t, stderr, "invalid:")
}

func TestRenderPDFAndHTML(t *testing.T) {
	input := writeSample(t)
	dir := t.TempDir()

	pdfPath := filepath.Join(dir, "out.pdf")
	_, _, err := execute(t, "--input", input, "--output", pdfPath, "--logo", filepath.Join(dir, "none.png"))
	require.NoError(t, err)
	raw, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))

	out, _, err := execute(t, "--input", input, "--html", "--output", "-", "--logo", filepath.Join(dir, "none.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "7 de março de 2025")
}

func TestHTMLPDFNeedsConfig(t *testing.T) {
	_, _, err := execute(t, "--input", writeSample(t), "--kind", "html.pdf")
	require.Error(t, err)
}

func TestUnknownKind(t *testing.T) {
	_, _, err := execute(t, "--input", writeSample(t), "--kind", "docx")
	require.Error(t, err)
}

func TestInputRequired(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)
}
