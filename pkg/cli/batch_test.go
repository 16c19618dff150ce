package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mchmarny/acmg/pkg/data"
	"github.com/mchmarny/acmg/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBatch(t *testing.T) {
	in := strings.NewReader("# variant batch\n" +
		"VAR-1\tPVS1, PS1, PM2_Supporting\n" +
		"VAR-2\tBA1\n" +
		"\n" +
		"PM1 PP3\n")

	items, err := parseBatch(in)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "VAR-1", items[0].ID)
	assert.Equal(t, "PVS1, PS1, PM2_Supporting", items[0].Input)
	assert.Equal(t, 2, items[0].Line)

	assert.Equal(t, "VAR-2", items[1].ID)
	assert.Equal(t, "BA1", items[1].Input)

	assert.Empty(t, items[2].ID)
	assert.Equal(t, "PM1 PP3", items[2].Input)
	assert.Equal(t, 5, items[2].Line)
}

func TestRenderBatch(t *testing.T) {
	res, err := score.Evaluate("PVS1, PS1, PM2_Supporting")
	require.NoError(t, err)

	items := []*BatchItem{
		{ID: "VAR-1", Line: 1, Input: "PVS1, PS1, PM2_Supporting", Result: res},
		{Line: 2, Input: "PS9", Error: "unknown evidence code: PS9"},
	}

	var buf bytes.Buffer
	renderBatch(&buf, items)

	want := "VAR-1\t13\tPathogenic\t0.999\n" +
		"line 2\tERROR\tunknown evidence code: PS9\n"

	assert.Equal(t, want, buf.String())
}

func TestAppRunBatch(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "test.db")

	file := filepath.Join(dir, "variants.tsv")
	content := "VAR-1\tPVS1, PS1, PM2_Supporting\nVAR-2\tBA1\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	assert.NoError(t, newApp().Run([]string{appName, "--db", target, "batch", "--file", file}))

	db, err := data.GetDB(target)
	require.NoError(t, err)
	defer db.Close()

	count, err := data.CountEvaluations(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// a bad line fails the run and saves nothing
	bad := filepath.Join(dir, "bad.tsv")
	require.NoError(t, os.WriteFile(bad, []byte("VAR-1\tPVS1\nVAR-2\tPS9\n"), 0600))
	err = newApp().Run([]string{appName, "--db", target, "batch", "--file", bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 variants failed")
	assert.Contains(t, err.Error(), "lines 2")

	count, err = data.CountEvaluations(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.Error(t, newApp().Run([]string{appName, "--db", target, "batch", "--file", filepath.Join(dir, "nope.tsv")}))
}
