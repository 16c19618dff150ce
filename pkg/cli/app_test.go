package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mchmarny/acmg/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "acmg-cli-test-*")
	if err != nil {
		panic(err)
	}
	os.Setenv("HOME", tmp)
	initLogging(false)

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

func testDBTarget(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestAppCommands(t *testing.T) {
	app := newApp()
	require.NotNil(t, app)

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}

	assert.Equal(t, []string{"info", "codes", "batch", "history", "reset", "server"}, names)
}

func TestAppRunInfo(t *testing.T) {
	err := newApp().Run([]string{appName, "--db", testDBTarget(t), "info", "PVS1", "PS1", "PM2_Supporting"})
	assert.NoError(t, err)
}

func TestAppRunInfoUnknownCode(t *testing.T) {
	err := newApp().Run([]string{appName, "--db", testDBTarget(t), "info", "PS9"})
	require.Error(t, err)

	var uce *score.UnknownCodeError
	assert.ErrorAs(t, err, &uce)
	assert.Equal(t, "PS9", uce.Code)
}

func TestAppRunInfoFormats(t *testing.T) {
	target := testDBTarget(t)

	for _, format := range []string{"text", "json", "yaml"} {
		err := newApp().Run([]string{appName, "--db", target, "--format", format, "info", "--no-save", "BS1", "BP4"})
		assert.NoError(t, err, format)
	}

	// command level format flag
	err := newApp().Run([]string{appName, "--db", target, "info", "--format", "json", "--no-save", "PM1"})
	assert.NoError(t, err)

	err = newApp().Run([]string{appName, "--db", target, "--format", "xml", "info", "PVS1"})
	assert.Error(t, err)
}

func TestAppRunCodes(t *testing.T) {
	target := testDBTarget(t)

	assert.NoError(t, newApp().Run([]string{appName, "--db", target, "codes"}))
	assert.NoError(t, newApp().Run([]string{appName, "--db", target, "--format", "yaml", "codes", "--category", "Benign"}))
	assert.NoError(t, newApp().Run([]string{appName, "--db", target, "codes", "--strength", "Strong"}))
	assert.Error(t, newApp().Run([]string{appName, "--db", target, "codes", "--category", "Bogus"}))
	assert.Error(t, newApp().Run([]string{appName, "--db", target, "codes", "--strength", "Weak"}))
}

func TestAppRunHistory(t *testing.T) {
	target := testDBTarget(t)

	require.NoError(t, newApp().Run([]string{appName, "--db", target, "info", "PVS1", "PS1"}))
	require.NoError(t, newApp().Run([]string{appName, "--db", target, "info", "BA1"}))

	assert.NoError(t, newApp().Run([]string{appName, "--db", target, "history"}))
	assert.NoError(t, newApp().Run([]string{appName, "--db", target, "--format", "json", "history", "--class", "Pathogenic", "--limit", "1"}))
	assert.Error(t, newApp().Run([]string{appName, "--db", target, "history", "--class", "Bogus"}))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", formatText, false},
		{"text", formatText, false},
		{"json", formatJSON, false},
		{"yaml", formatYAML, false},
		{"yml", formatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestFilterCodes(t *testing.T) {
	all, err := filterCodes("", "")
	require.NoError(t, err)
	assert.Len(t, all, 28)

	benign, err := filterCodes("benign", "")
	require.NoError(t, err)
	assert.Len(t, benign, 12)

	strong, err := filterCodes("Pathogenic", "strong")
	require.NoError(t, err)
	assert.Len(t, strong, 4)

	_, err = filterCodes("Bogus", "")
	assert.Error(t, err)

	_, err = filterCodes("", "Weak")
	assert.Error(t, err)
}
