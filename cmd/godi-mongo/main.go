// Command godi-mongo checks a host configuration against the mongo plugin and opens its connection.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	godi "github.com/a-peyrard/godi-mongo"
	"github.com/a-peyrard/godi-mongo/config"
	"github.com/a-peyrard/godi-mongo/mongodb"
	"github.com/a-peyrard/godi-mongo/slices"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"go.mongodb.org/mongo-driver/mongo"
)

type (
	settings struct {
		Config string
		Log    *logSettings
	}

	logSettings struct {
		Level  string
		Format string
	}
)

func (s *logSettings) ApplyDefault() {
	if s.Level == "" {
		s.Level = "info"
	}
	if s.Format == "" {
		s.Format = "logfmt"
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults, err := config.Load[settings](config.WithEnvPrefix("GODI"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if err := newCommand(defaults, os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newCommand(defaults *settings, out io.Writer) *cli.Command {
	configFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Value:    defaults.Config,
			Usage:    "host configuration file (yaml, json, toml), the plugin reads plugins.mongoDb",
			Required: defaults.Config == "",
		}
	}

	return &cli.Command{
		Name:  "godi-mongo",
		Usage: "register mongo services from a host configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log.level", Value: defaults.Log.Level, Usage: "Log level (debug, info, warn, error)"},
			&cli.StringFlag{Name: "log.format", Value: defaults.Log.Format, Usage: "Log format (logfmt, json)"},
		},
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "validate the plugin configuration and list the services it registers",
				Flags: []cli.Flag{configFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					return validateAction(ctx, c, out)
				},
			},
			{
				Name:  "connect",
				Usage: "build every service, connecting to the database",
				Flags: []cli.Flag{
					configFlag(),
					&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "give up connecting after this delay"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return connectAction(ctx, c, out)
				},
			},
		},
	}
}

func validateAction(_ context.Context, c *cli.Command, out io.Writer) error {
	logger := initializeLogger(c.String("log.level"), c.String("log.format"))

	compiler, err := newCompiler(c.String("config"), logger, nil)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, compiler.Describe())
	return err
}

func connectAction(ctx context.Context, c *cli.Command, out io.Writer) error {
	logger := initializeLogger(c.String("log.level"), c.String("log.format"))

	compiler, err := newCompiler(c.String("config"), logger, mongodb.NewDriver())
	if err != nil {
		return err
	}
	defer func() {
		if err := compiler.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close services")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.Duration("timeout"))
	defer cancel()

	start := time.Now()
	if err := compiler.Compile(ctx); err != nil {
		return fmt.Errorf("failed to build services:\n\t%w", err)
	}
	logger.Info().Dur("duration", time.Since(start)).Msg("all services built")

	if _, err := fmt.Fprint(out, compiler.Describe()); err != nil {
		return err
	}

	collections := slices.Filter(compiler.Names(), func(name string) bool {
		return strings.HasSuffix(name, mongodb.CollectionSuffix)
	})
	for _, name := range collections {
		collection, err := godi.Resolve[*mongo.Collection](ctx, compiler, name)
		if err != nil {
			return err
		}
		count, err := collection.EstimatedDocumentCount(ctx)
		if err != nil {
			return fmt.Errorf("unable to count documents of %s:\n\t%w", collection.Name(), err)
		}
		if _, err := fmt.Fprintf(out, "%s: %s.%s, ~%d documents\n", name, collection.Database().Name(), collection.Name(), count); err != nil {
			return err
		}
	}
	return nil
}

// newCompiler loads the configuration tree at path and initializes the mongo plugin with it.
func newCompiler(path string, logger zerolog.Logger, driver mongodb.Driver) (*godi.Compiler, error) {
	tree, err := config.LoadTree(path)
	if err != nil {
		return nil, err
	}

	compiler := godi.New(
		godi.WithConfig(tree),
		godi.WithLogger(logger),
	)
	plugin := mongodb.NewPlugin(
		mongodb.WithDriver(driver),
		mongodb.WithLogger(logger),
	)
	if err := compiler.Use(plugin); err != nil {
		return nil, err
	}
	return compiler, nil
}
