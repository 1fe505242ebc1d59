package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/delaneyj/signalgraph/i18n"
	"github.com/delaneyj/signalgraph/internal/config"
	"github.com/delaneyj/signalgraph/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
)

const (
	configKey    = "config"
	resourceKey  = "resource"
	localeKey    = "locale"
	namespaceKey = "namespace"
	argKey       = "arg"
	pluralKey    = "plural"
	logLevelKey  = "log-level"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "i18n",
		Usage: "Inspect and render translation resources",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: configKey, Aliases: []string{"c"}, Usage: "Config file, defaults to signalgraph.yaml in the working directory"},
			&cli.StringSliceFlag{Name: resourceKey, Aliases: []string{"r"}, Usage: "Resource file or directory, repeatable"},
			&cli.StringFlag{Name: pluralKey, Usage: "Plural rules: english or cldr"},
			&cli.StringFlag{Name: logLevelKey, Usage: "debug, info, warn or error"},
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Show the parts of a template",
				ArgsUsage: "<template>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return errors.New("expected one template")
					}
					return runParse(os.Stdout, cmd.Args().First())
				},
			},
			{
				Name:  "keys",
				Usage: "List the translations of a namespace",
				Flags: messageFlags(false),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					cat, err := cfg.Catalog(cfg.Logger(os.Stderr))
					if err != nil {
						return err
					}
					return runKeys(os.Stdout, cat, cfg.Locale, cfg.Namespace)
				},
			},
			{
				Name:      "render",
				Usage:     "Render one translation",
				ArgsUsage: "<key>",
				Flags:     messageFlags(true),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, key, args, err := messageInput(cmd)
					if err != nil {
						return err
					}
					cat, err := cfg.Catalog(cfg.Logger(os.Stderr))
					if err != nil {
						return err
					}
					s, err := cat.Translate(cfg.Locale, cfg.Namespace, key, args)
					if err != nil {
						return err
					}
					fmt.Fprintln(os.Stdout, s)
					return nil
				},
			},
			{
				Name:      "watch",
				Usage:     "Render a translation again whenever its resources change",
				ArgsUsage: "<key>",
				Flags:     messageFlags(true),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, key, args, err := messageInput(cmd)
					if err != nil {
						return err
					}
					logger := cfg.Logger(os.Stderr)
					collector := metrics.New()
					if cfg.MetricsAddr != "" {
						go func() {
							mux := http.NewServeMux()
							mux.Handle("/metrics", promhttp.Handler())
							logger.Info("serving metrics", "addr", cfg.MetricsAddr)
							if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
								logger.Error("metrics server stopped", "error", err)
							}
						}()
					}
					return runWatch(ctx, os.Stdout, watchOptions{
						cfg:       cfg,
						logger:    logger,
						collector: collector,
						key:       key,
						args:      args,
					})
				},
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func messageFlags(withArgs bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: localeKey, Aliases: []string{"l"}, Usage: "Locale to render in"},
		&cli.StringFlag{Name: namespaceKey, Aliases: []string{"n"}, Usage: "Namespace of the key"},
	}
	if withArgs {
		flags = append(flags, &cli.StringSliceFlag{Name: argKey, Aliases: []string{"a"}, Usage: "Argument as name=value, repeatable"})
	}
	return flags
}

// loadConfig reads the config file and applies the command line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String(configKey); path != "" {
		cfg, err = config.Load(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = config.LoadOptional(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	cfg.Resources = append(cfg.Resources, cmd.StringSlice(resourceKey)...)
	if v := cmd.String(localeKey); v != "" {
		cfg.Locale = v
	}
	if v := cmd.String(namespaceKey); v != "" {
		cfg.Namespace = v
	}
	if v := cmd.String(pluralKey); v != "" {
		cfg.Plural = v
	}
	if v := cmd.String(logLevelKey); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func messageInput(cmd *cli.Command) (*config.Config, string, i18n.Args, error) {
	if cmd.Args().Len() != 1 {
		return nil, "", nil, errors.New("expected one translation key")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", nil, err
	}
	args, err := parseArgs(cmd.StringSlice(argKey))
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, cmd.Args().First(), args, nil
}

// parseArgs turns name=value pairs into arguments. Numeric values become
// float64 so plurals can select on them.
func parseArgs(pairs []string) (i18n.Args, error) {
	args := i18n.Args{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q is not name=value", pair)
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			args[name] = n
			continue
		}
		args[name] = value
	}
	return args, nil
}
