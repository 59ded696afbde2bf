package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	"yfscrape/internal/components/telemetry"
	"yfscrape/internal/scrapers/yahoo"
	"yfscrape/lib/browser"
	"yfscrape/lib/configutil"
	"yfscrape/lib/httpfetch"
	"yfscrape/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	configPath string
	useBrowser bool
	baseURL    string
	format     string
	verbose    bool
	dumpDir    string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", defaultConfigName, "The config file to read, by default it is searched for from the working directory up, a missing file means defaults.")
	flags.BoolVar(&useBrowser, "browser", false, "Render pages in a browser instead of fetching them.")
	flags.StringVar(&baseURL, "base-url", "", "Overrides the base url of the finance site.")
	flags.StringVar(&format, "format", FORMAT_TABLE, "Output format, one of table, csv, markdown, json.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug reports.")
	flags.StringVar(&dumpDir, "dump-dir", "", "Write every fetched page to this directory.")
}

// environment is what every command needs, built once before it runs.
type environment struct {
	client *yahoo.Client
	out    output
	tel    telemetry.API
	otel   telemetry.Telemetry
	driver *browser.Driver
}

var env *environment

var rootCmd = &cobra.Command{
	Use:          "yfscrape",
	Short:        "yfscrape reads statements, statistics, quotes and fund data from Yahoo Finance.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		env, err = newEnvironment(cmd.Context(), cmd.Flags().Changed("config"))
		return err
	},
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if env != nil {
		env.close()
	}
	if err != nil {
		serviceutil.Fatal("yfscrape failed", err)
	}
}

// loadConfig reads the config file given by --config, or the nearest
// yfscrape.json5 from the working directory up when the flag is left out.
func loadConfig(path string, explicit bool) (Config, error) {
	if explicit {
		return configutil.ReadConfigOr(path, defaultConfig())
	}
	cfg, err := configutil.ReadRecursively(path, defaultConfig())
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	return cfg, err
}

func newEnvironment(ctx context.Context, explicitConfig bool) (*environment, error) {
	telemetry.InitSlog(os.Stderr, verbose)
	tel := telemetry.SlogAPI{}

	out, err := newOutput(os.Stdout, format)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(configPath, explicitConfig)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if useBrowser {
		cfg.Browser.Enabled = true
	}
	if dumpDir != "" {
		cfg.Http.DumpDir = dumpDir
	}

	otel, err := telemetry.Setup(ctx, "yfscrape", cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}
	e := &environment{out: out, tel: tel, otel: otel}

	opts := yahoo.Options{
		BaseURL:     cfg.BaseURL,
		WaitTimeout: cfg.waitTimeout(),
	}
	if cfg.Browser.Enabled {
		e.driver, err = browser.Launch(ctx, cfg.browserConfig(), tel)
		if err != nil {
			e.close()
			return nil, err
		}
		opts.Renderer = e.driver
	} else {
		opts.Fetcher, err = httpfetch.New(cfg.fetcherOptions(), tel)
		if err != nil {
			e.close()
			return nil, err
		}
	}
	e.client = yahoo.NewClient(opts, tel)
	return e, nil
}

func (e *environment) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	telemetry.RecordPerfStats(ctx, e.tel)

	if e.driver != nil {
		err := e.driver.Close()
		if err != nil {
			slog.Warn("failed to close browser", "err", err)
		}
	}
	err := e.otel.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}
