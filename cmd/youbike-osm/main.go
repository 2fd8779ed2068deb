package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	youbikeosm "github.com/youbike-osm/youbike-osm"
	"github.com/youbike-osm/youbike-osm/config"
	"github.com/youbike-osm/youbike-osm/internal/logging"
	"github.com/youbike-osm/youbike-osm/loader"
)

var version = "dev"

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// usageError wraps argument and configuration failures so they exit with
// exitUsage.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "youbike-osm: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) || youbikeosm.IsConfigError(err) {
			return exitUsage
		}
		return exitFailed
	}
	return exitOK
}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "format, f",
			Usage: "output format: osm, json or csv (unknown values select osm)",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "output file (default youbike-export-<unix time>.<ext>)",
		},
		cli.StringFlag{
			Name:  "schema, s",
			Usage: "feed schema version: legacy or current",
		},
		cli.StringFlag{
			Name:  "name-style",
			Usage: "OSM name tag: bilingual or zh (default depends on schema)",
		},
		cli.StringFlag{
			Name:  "feed-url",
			Usage: "station feed URL or local snapshot path",
		},
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "youbike-osm"
	app.Usage = "Export YouBike stations as OSM XML, JSON or CSV"
	app.Version = version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.OnUsageError = onUsageError
	// errors are mapped to exit codes by run, never by the cli package
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Action = func(c *cli.Context) error {
		if c.NArg() > 0 {
			return usageError{err: fmt.Errorf("unknown command %q", c.Args().First())}
		}
		return usageError{err: errors.New("a subcommand is required (get or convert)")}
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "YAML config file (default config.yml or config/config.yml)",
			EnvVar: "YOUBIKE_CONFIG",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "debug, info, warn or error",
			EnvVar: "YOUBIKE_LOG_LEVEL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:         "get",
			Usage:        "fetch the live station feed and export it",
			Flags:        exportFlags(),
			OnUsageError: onUsageError,
			Action: func(c *cli.Context) error {
				return export(c, loader.ModeFetch, stdout, stderr)
			},
		},
		{
			Name:  "convert",
			Usage: "convert a local XML, OSM, JSON or CSV file",
			Flags: append(exportFlags(), cli.StringFlag{
				Name:  "input, i",
				Usage: "input file (required)",
			}),
			OnUsageError: onUsageError,
			Action: func(c *cli.Context) error {
				return export(c, loader.ModeConvert, stdout, stderr)
			},
		},
	}
	return app
}

func onUsageError(_ *cli.Context, err error, _ bool) error {
	return usageError{err: err}
}

func export(c *cli.Context, mode loader.Mode, stdout, stderr io.Writer) error {
	cfg, err := config.LoadAppConfig(c.GlobalString("config"))
	if err != nil {
		return usageError{err: err}
	}

	level := cfg.Log.Level
	if l := c.GlobalString("log-level"); l != "" {
		level = l
	}
	logger := logging.InitLogging(stderr, level, cfg.Log.Format)
	ctx := logging.WithLogger(context.Background(), logger)

	opts := youbikeosm.Options{
		Mode:      mode,
		Schema:    c.String("schema"),
		Format:    c.String("format"),
		NameStyle: c.String("name-style"),
		FeedURL:   c.String("feed-url"),
		Output:    c.String("output"),
	}
	if mode == loader.ModeConvert {
		opts.Input = c.String("input")
	}

	path, err := youbikeosm.NewExporter(cfg).Run(ctx, opts)
	if err != nil {
		logging.LogError(logger, "export failed", err)
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}
