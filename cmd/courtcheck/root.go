package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/court-availability-service/internal/config"
	"github.com/preston-bernstein/court-availability-service/internal/logging"
	"github.com/preston-bernstein/court-availability-service/internal/providers"
	"github.com/preston-bernstein/court-availability-service/internal/providers/fixture"
	"github.com/preston-bernstein/court-availability-service/internal/providers/kluby"
	"github.com/preston-bernstein/court-availability-service/internal/store"
)

const appVersion = "dev"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	fixture      bool
	baseURL      string
	club         string
	timeout      time.Duration
	rateInterval time.Duration
	timezone     string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	defaults := config.Load()
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "courtcheck",
		Short:        "Check tennis court availability",
		Long:         `Look up free runs on the venue's booking grid from the terminal.`,
		Version:      appVersion,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&opts.fixture, "fixture", false, "use the built-in fixture venue instead of the live grid")
	flags.StringVar(&opts.baseURL, "base-url", defaults.Kluby.BaseURL, "venue base URL")
	flags.StringVar(&opts.club, "club", defaults.Kluby.Club, "club slug on the venue")
	flags.DurationVar(&opts.timeout, "timeout", defaults.Kluby.Timeout, "per-page fetch timeout")
	flags.DurationVar(&opts.rateInterval, "rate-interval", defaults.Kluby.RateInterval, "minimum spacing between page fetches")
	flags.StringVar(&opts.timezone, "timezone", defaults.Timezone, "zone dates and times are read in")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newCheckCmd(opts), newScheduleCmd(opts))
	return root
}

func (o *globalOptions) logger(out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   o.logLevel,
		Format:  "text",
		Service: "courtcheck",
		Version: appVersion,
		Output:  out,
	})
}

// fetcher builds the fetch stack for one invocation; pages are cached for the life of the process.
func (o *globalOptions) fetcher(logger *slog.Logger) providers.ScheduleFetcher {
	var source providers.ScheduleFetcher
	if o.fixture {
		source = fixture.New()
	} else {
		client := kluby.NewClient(kluby.Config{
			BaseURL: o.baseURL,
			Club:    o.club,
			Timeout: o.timeout,
			Logger:  logger,
		})
		source = providers.NewRateLimitedFetcher(client, kluby.ProviderName, o.rateInterval, logger, nil)
	}
	return providers.NewCachingFetcher(source, store.NewScheduleCache(0), logger, nil)
}
