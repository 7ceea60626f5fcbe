package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/court-availability-service/internal/checker"
	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
	"github.com/preston-bernstein/court-availability-service/internal/watch"
)

type courtResult struct {
	court     domain.Court
	intervals []domain.DateRange
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var (
		entry       watch.Entry
		overlapping bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find free runs for one or more courts",
		Long: `Scan a time window on one day and list every run of the requested
length during which a court stays free. Courts are checked in the order given.`,
		Example: "  courtcheck check --date 28-3-2025 --start 22:00 --end 23:00 --court 5 --court 6",
		RunE: func(cmd *cobra.Command, args []string) error {
			nonOverlapping := !overlapping
			entry.NonOverlapping = &nonOverlapping

			reqs, err := entry.Requests(timeutil.LoadLocation(opts.timezone))
			if err != nil {
				return err
			}

			logger := opts.logger(cmd.ErrOrStderr())
			chk := checker.New(opts.fetcher(logger), logger, nil)

			results := make([]courtResult, 0, len(reqs))
			for _, req := range reqs {
				intervals, err := chk.Check(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("court %d: %w", req.Court.ID, err)
				}
				results = append(results, courtResult{court: req.Court, intervals: intervals})
			}
			renderCheck(cmd.OutOrStdout(), entry, results)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&entry.Date, "date", "", "day to check, d-M-yyyy (e.g. 28-3-2025)")
	flags.StringVar(&entry.StartTime, "start", "", "window start, HH:MM")
	flags.StringVar(&entry.EndTime, "end", "", "window end, HH:MM")
	flags.IntSliceVar(&entry.Courts, "court", nil, "court id (repeatable)")
	flags.StringVar(&entry.RequiredInterval, "duration", "1h", "length of the free run wanted")
	flags.BoolVar(&overlapping, "overlapping", false, "report every qualifying run, including overlapping ones")
	for _, name := range []string{"date", "start", "end", "court"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func renderCheck(out io.Writer, entry watch.Entry, results []courtResult) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(entry.String())
	t.AppendHeader(table.Row{"Court", "Page", "Free from", "Free until"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true},
	})

	available := 0
	for _, r := range results {
		if len(r.intervals) == 0 {
			t.AppendRow(table.Row{r.court.ID, r.court.Page(), "-", "-"}, rowConfigAutoMerge)
			continue
		}
		available++
		for _, interval := range r.intervals {
			t.AppendRow(table.Row{
				r.court.ID,
				r.court.Page(),
				timeutil.FormatClock(interval.Start),
				timeutil.FormatClock(interval.End),
			}, rowConfigAutoMerge)
		}
	}
	t.AppendFooter(table.Row{"", "", "courts free", fmt.Sprintf("%d of %d", available, len(results))})
	t.Render()
}
