package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

func newScheduleCmd(opts *globalOptions) *cobra.Command {
	var (
		date string
		page int
	)

	cmd := &cobra.Command{
		Use:     "schedule",
		Short:   "Print the free intervals of every court on one grid page",
		Example: "  courtcheck schedule --date 28-3-2025 --page 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 0 {
				return fmt.Errorf("invalid page %d", page)
			}
			day, err := timeutil.ParseWatchDate(date, timeutil.LoadLocation(opts.timezone))
			if err != nil {
				return fmt.Errorf("invalid date %q (expected d-M-yyyy): %w", date, err)
			}

			logger := opts.logger(cmd.ErrOrStderr())
			schedule, err := opts.fetcher(logger).FetchSchedule(cmd.Context(), day, page)
			if err != nil {
				return err
			}
			renderSchedule(cmd.OutOrStdout(), schedule, page)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to show, d-M-yyyy")
	cmd.Flags().IntVar(&page, "page", 0, "grid page (six courts per page)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func renderSchedule(out io.Writer, schedule domain.CourtSchedule, page int) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("%s page %d", timeutil.FormatDate(schedule.Date), page))
	t.AppendHeader(table.Row{"Court", "Free"})
	t.Style().Options.SeparateRows = true

	for _, id := range schedule.CourtIDs() {
		intervals := schedule.IntervalsFor(id)
		spans := make([]string, 0, len(intervals))
		for _, interval := range intervals {
			spans = append(spans, timeutil.FormatClock(interval.Start)+"-"+timeutil.FormatClock(interval.End))
		}
		free := strings.Join(spans, ", ")
		if free == "" {
			free = "-"
		}
		t.AppendRow(table.Row{id, free})
	}
	t.Render()

	if len(schedule.Warnings) == 0 {
		return
	}
	w := table.NewWriter()
	w.SetOutputMirror(out)
	w.SetTitle("parse warnings")
	w.AppendHeader(table.Row{"Row", "Kind", "Detail"})
	for _, warning := range schedule.Warnings {
		w.AppendRow(table.Row{warning.Row, warning.Kind, warning.Detail})
	}
	w.Render()
}
