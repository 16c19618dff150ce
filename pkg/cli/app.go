package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/mchmarny/acmg/pkg/config"
	"github.com/mchmarny/acmg/pkg/data"
	"github.com/mchmarny/acmg/pkg/logging"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "acmg"
	appConfigKey = "app-config"

	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatText

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	dbTargetFlag = &urfave.StringFlag{
		Name:  "db",
		Usage: "Database target, SQLite file path or postgres:// URI",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [text, json, yaml]",
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Home     string
	DBTarget string
	Debug    bool
	Conf     *config.Config
	DB       *data.DB
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 appName,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "CLI for scoring ACMG/AMP evidence codes and classifying variants",
		Flags: []urfave.Flag{
			debugFlag,
			dbTargetFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			infoCmd,
			codesCmd,
			batchCmd,
			historyCmd,
			resetCmd,
			serverCmd,
		},
		Before: func(c *urfave.Context) error {
			debug := c.Bool(debugFlag.Name)
			if debug {
				initLogging(true)
			}

			home := getHomeDir()
			conf, err := config.ReadOrCreate(home)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			f := c.String(formatFlag.Name)
			if f == "" {
				f = conf.Format
			}
			outputFormat, err = parseFormat(f)
			if err != nil {
				return err
			}

			target := c.String(dbTargetFlag.Name)
			if target == "" {
				target = conf.DB
			}
			if target == "" {
				target = path.Join(home, data.DataFileName)
			}

			if err := data.Init(target); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}

			db, err := data.GetDB(target)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Home:     home,
				DBTarget: target,
				Debug:    debug,
				Conf:     conf,
				DB:       db,
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.DB != nil {
				cfg.DB.Close()
			}
			return nil
		},
	}
}

// applyFlags re-reads global flags that can also be set at the command
// level, like `acmg info --format json`.
func applyFlags(c *urfave.Context) error {
	if c.Bool(debugFlag.Name) {
		initLogging(true)
	}
	if f := c.String(formatFlag.Name); f != "" {
		v, err := parseFormat(f)
		if err != nil {
			return err
		}
		outputFormat = v
	}
	return nil
}

func parseFormat(f string) (string, error) {
	switch f {
	case "", formatText:
		return formatText, nil
	case formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", f)
	}
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logging.NewCLIHandler(os.Stderr, level)))
}

func getHomeDir() string {
	dir, created, err := config.GetOrCreateHomeDir(appName)
	if err != nil {
		slog.Debug("error getting home dir, using current dir instead", "error", err)
		return "."
	}
	if created {
		slog.Debug("created home dir", "path", dir)
	}
	return dir
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
