package reportgen

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

var fixedNow = time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newGenerator(t *testing.T, logo string) *Generator {
	t.Helper()
	g := NewGenerator(GeneratorConfig{LogoPath: logo, Logger: quietLogger()})
	g.WithNow(func() time.Time { return fixedNow })
	return g
}

func propertiesOnly() *reportdata.ReportData {
	full := reportdata.Sample(fixedNow)
	return &reportdata.ReportData{
		OrganizationName: full.OrganizationName,
		Properties:       full.Properties,
	}
}

func TestLayoutPropertiesOnlyHasTwoPages(t *testing.T) {
	g := newGenerator(t, filepath.Join(t.TempDir(), "missing.png"))
	doc, err := g.Layout(context.Background(), propertiesOnly())
	require.NoError(t, err)
	require.Equal(t, 2, doc.PageCount())
	assert.Equal(t, "cover", doc.Pages[0].Section)
	assert.Equal(t, string(reportdata.SectionProperties), doc.Pages[1].Section)
	assert.Contains(t, doc.Pages[1].Texts(), "Página 2 de 2")
}

func TestLayoutStampsGenerationDate(t *testing.T) {
	g := newGenerator(t, "")
	data := propertiesOnly()
	doc, err := g.Layout(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, data.GeneratedAt.IsZero(), "caller data must not be mutated")
	assert.Contains(t, doc.Pages[0].Texts(), "7 de março de 2025")
}

func TestLayoutRejectsInvalidData(t *testing.T) {
	g := newGenerator(t, "")
	_, err := g.Layout(context.Background(), &reportdata.ReportData{})
	require.ErrorIs(t, err, reportdata.ErrInvalid)
}

func TestLayoutHonoursCancellation(t *testing.T) {
	g := newGenerator(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Layout(ctx, reportdata.Sample(fixedNow))
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateFullSample(t *testing.T) {
	g := newGenerator(t, "")
	pdf, err := g.Generate(context.Background(), reportdata.Sample(fixedNow))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestLogoMissingFileContinues(t *testing.T) {
	var logs bytes.Buffer
	g := NewGenerator(GeneratorConfig{LogoPath: filepath.Join(t.TempDir(), "nope.png"), Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	assert.Nil(t, g.Logo())
	assert.Contains(t, logs.String(), "report logo unavailable")
}

func TestLogoDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(png, append([]byte{0x89, 'P', 'N', 'G'}, 0, 0), 0o644))
	txt := filepath.Join(dir, "logo.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not an image"), 0o644))

	logo := newGenerator(t, png).Logo()
	require.NotNil(t, logo)
	assert.Equal(t, "PNG", logo.Format)
	assert.Nil(t, newGenerator(t, txt).Logo())
}
