package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/ScrapTracker_Go/internal/backup"
	"github.com/osse101/ScrapTracker_Go/internal/config"
	"github.com/osse101/ScrapTracker_Go/internal/database"
)

func testEnv(t *testing.T) env {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "scrap.db")
	return env{
		loadConfig: func() (*config.Config, error) {
			return &config.Config{
				Environment: "test",
				LogLevel:    "error",
				LogFormat:   "text",
				DBDriver:    database.DriverSQLite,
				DBPath:      dbPath,
			}, nil
		},
		readPassword: func(int) ([]byte, error) { return nil, errors.New("no terminal") },
	}
}

func run(t *testing.T, e env, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(e)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

const sampleBackup = `{
  "options": {"line": ["L1", "L2"], "shift": ["Day"]},
  "items": [
    {"id": 7, "created_at": "2026-03-01 08:00:00", "parts": "P-1", "line": "L1",
     "reason": "Dent", "sequence": 3, "shift": "Day"}
  ]
}`

func TestMigrate(t *testing.T) {
	out, err := run(t, testEnv(t), "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")
}

func TestImportThenExport(t *testing.T) {
	e := testEnv(t)

	out, err := run(t, e, sampleBackup, "import", "-")
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 entries, 2 lines and 1 shifts\n", out)

	out, err = run(t, e, "", "export", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Options struct {
			Line  []string `json:"line"`
			Shift []string `json:"shift"`
		} `json:"options"`
		Items []struct {
			ID    int64  `json:"id"`
			Parts string `json:"parts"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []string{"L1", "L2"}, doc.Options.Line)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, int64(7), doc.Items[0].ID)
	assert.Equal(t, "P-1", doc.Items[0].Parts)

	csvPath := filepath.Join(t.TempDir(), "out.csv")
	_, err = run(t, e, "", "export", "-f", "CSV", "-o", csvPath)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "P-1")
}

func TestImportFromFile(t *testing.T) {
	e := testEnv(t)
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBackup), 0o600))

	out, err := run(t, e, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 entries")

	_, err = run(t, e, "", "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	_, err := run(t, testEnv(t), `{"items": "nope"}`, "import", "-")
	require.Error(t, err)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, testEnv(t), "", "export", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestUploadWithoutBucket(t *testing.T) {
	_, err := run(t, testEnv(t), "", "upload")
	assert.ErrorIs(t, err, backup.ErrS3NotConfigured)
}

func TestConfigFailure(t *testing.T) {
	e := testEnv(t)
	e.loadConfig = func() (*config.Config, error) { return nil, errors.New("bad env") }
	_, err := run(t, e, "", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad env")
}

func TestHashPassword(t *testing.T) {
	e := testEnv(t)

	t.Run("prints a verifiable hash", func(t *testing.T) {
		e.readPassword = func(int) ([]byte, error) { return []byte("letmein"), nil }
		out, err := run(t, e, "", "hash-password")
		require.NoError(t, err)
		hash := strings.TrimSpace(out)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("letmein")))
	})

	t.Run("mismatch", func(t *testing.T) {
		calls := 0
		e.readPassword = func(int) ([]byte, error) {
			calls++
			if calls == 1 {
				return []byte("one"), nil
			}
			return []byte("two"), nil
		}
		_, err := run(t, e, "", "hash-password")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "do not match")
	})

	t.Run("empty", func(t *testing.T) {
		e.readPassword = func(int) ([]byte, error) { return []byte{}, nil }
		_, err := run(t, e, "", "hash-password")
		require.Error(t, err)
	})

	t.Run("terminal error", func(t *testing.T) {
		e.readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
		_, err := run(t, e, "", "hash-password")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no tty")
	})
}
