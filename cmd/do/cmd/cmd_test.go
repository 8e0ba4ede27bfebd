package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpost/internal/analytics"
	"github.com/templui/goalpost/internal/service"
)

func TestReportText(t *testing.T) {
	var out bytes.Buffer
	cmd := ReportCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Goals:            5")
	assert.Contains(t, out.String(), "Overall progress: 46%")
	assert.Contains(t, out.String(), "Personal / team:  2 / 3")
	assert.Contains(t, out.String(), "7 completed, 1 remaining")
	assert.Contains(t, out.String(), "Early Stage")
}

func TestReportJSONPersonal(t *testing.T) {
	var out bytes.Buffer
	cmd := ReportCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--type", "personal", "--json"})

	require.NoError(t, cmd.Execute())

	var report analytics.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 2, report.TotalGoals)
	assert.Equal(t, 38, report.OverallProgress)
	assert.Equal(t, analytics.GoalTypes{Personal: 2, Team: 0}, report.GoalTypes)
}

func TestReportRejectsUnknownType(t *testing.T) {
	cmd := ReportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--type", "company"})

	assert.Error(t, cmd.Execute())
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	cmd := ExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", path})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var export service.Export
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Len(t, export.Goals, 5)
	assert.Len(t, export.Milestones, 8)
	assert.Len(t, export.Comments, 6)
	assert.False(t, export.ExportedAt.IsZero())
}

func TestDevEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	env := devEnv([]string{"HOME=/root"}, "9000")
	assert.Equal(t, []string{"HOME=/root", "PORT=9000"}, env)
}

func TestAirArgsPorts(t *testing.T) {
	args := airArgs("9000", "9001")
	assert.Equal(t, "air", args[0])
	assert.Contains(t, args, "9000")
	assert.Contains(t, args, "9001")
	assert.Contains(t, args, "./bin/do gen && go build -o ./tmp/main ./cmd/server", "templ output regenerated before each build")
	assert.Contains(t, args, "go,templ")
}

func TestTemplUpToDate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "page.templ")
	out := filepath.Join(dir, "page_templ.go")
	require.NoError(t, os.WriteFile(src, []byte("package page"), 0o644))

	assert.False(t, templUpToDate(dir), "missing output")

	require.NoError(t, os.WriteFile(out, []byte("package page"), 0o644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, old, old))
	assert.True(t, templUpToDate(dir))

	require.NoError(t, os.Chtimes(src, time.Now().Add(time.Hour), time.Now().Add(time.Hour)))
	assert.False(t, templUpToDate(dir), "source edited after generation")

	skipped := filepath.Join(dir, "_examples")
	require.NoError(t, os.Mkdir(skipped, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skipped, "other.templ"), []byte("package other"), 0o644))
	require.NoError(t, os.Chtimes(src, old, old))
	assert.True(t, templUpToDate(dir), "underscore directories are not part of the module")
}
