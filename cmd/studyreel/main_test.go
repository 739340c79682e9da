package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "debug level", level: "debug"},
		{name: "info level", level: "info"},
		{name: "warn level", level: "warn"},
		{name: "error level", level: "error"},
		{name: "uppercase is normalized", level: "DEBUG"},
		{name: "invalid level", level: "loud", wantErr: true},
		{name: "empty level", level: "", wantErr: true},
	}

	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &cli.App{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log-level", Value: tt.level},
				},
				Before: setupLogger,
				Action: func(c *cli.Context) error { return nil },
			}

			err := app.Run([]string{"studyreel"})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid log level")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIDArg(t *testing.T) {
	run := func(args ...string) error {
		app := &cli.App{
			Commands: []*cli.Command{
				{
					Name: "check",
					Action: func(c *cli.Context) error {
						_, err := idArg(c)
						return err
					},
				},
			},
		}
		return app.Run(append([]string{"studyreel", "check"}, args...))
	}

	t.Run("valid ID", func(t *testing.T) {
		require.NoError(t, run("42"))
	})

	t.Run("missing argument", func(t *testing.T) {
		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("not a number", func(t *testing.T) {
		err := run("abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid ID")
	})
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00", formatSeconds(0))
	assert.Equal(t, "00:30", formatSeconds(30))
	assert.Equal(t, "01:00", formatSeconds(60))
	assert.Equal(t, "02:05", formatSeconds(125))
	assert.Equal(t, "61:40", formatSeconds(3700))
}

func TestAddAndStatusCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "add",
				Action: addCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
					&cli.StringFlag{Name: "text"},
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}},
				),
			},
			{
				Name:   "status",
				Action: statusCommand,
				Flags:  databaseFlags(),
			},
		},
	}

	err := app.Run([]string{"studyreel", "add", "--db", dbPath, "--title", "Physics 101", "--text", "Newton's laws."})
	require.NoError(t, err)

	// Sequence IDs start at 1
	err = app.Run([]string{"studyreel", "status", "--db", dbPath, "1"})
	require.NoError(t, err)

	err = app.Run([]string{"studyreel", "status", "--db", dbPath, "99"})
	require.Error(t, err)
}

func TestAddCommandRejectsTextAndFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "material.txt")
	require.NoError(t, os.WriteFile(file, []byte("Newton's laws."), 0644))

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "add",
				Action: addCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
					&cli.StringFlag{Name: "text"},
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}},
				),
			},
		},
	}

	err := app.Run([]string{"studyreel", "add",
		"--db", filepath.Join(t.TempDir(), "db"),
		"--title", "Physics 101",
		"--text", "Newton's laws.",
		"--file", file,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestDatabaseFlagIsRequired(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "status",
				Action: statusCommand,
				Flags:  databaseFlags(),
			},
		},
	}

	err := app.Run([]string{"studyreel", "status", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
