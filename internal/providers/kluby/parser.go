package kluby

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/providers"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

// grid is the reconstructed per-row, per-column booking state of one page.
// times holds only the rows whose label parsed, in row order; cells holds every row.
type grid struct {
	times    []time.Time
	cells    [][]bool
	warnings []domain.ParseWarning
}

// pendingSpan carries a rowspan cell down its column.
type pendingSpan struct {
	available bool
	rowsLeft  int
}

func parseGrid(r io.Reader, date time.Time, columns int) (grid, error) {
	root, err := html.Parse(r)
	if err != nil {
		return grid{}, &providers.ParseError{Provider: ProviderName, Reason: "invalid html", Err: err}
	}
	doc := goquery.NewDocumentFromNode(root)

	if doc.Find(tableSelector).Length() == 0 {
		return grid{}, &providers.ParseError{Provider: ProviderName, Reason: "schedule table not found"}
	}
	rows := doc.Find(rowSelector)
	if rows.Length() == 0 {
		return grid{}, &providers.ParseError{Provider: ProviderName, Reason: "schedule table has no rows"}
	}
	return readRows(rows, date, columns), nil
}

func readRows(rows *goquery.Selection, date time.Time, columns int) grid {
	var g grid
	pending := make([]*pendingSpan, columns)

	for rowIdx, row := range rows.EachIter() {
		tds := row.ChildrenFiltered("td")

		label := strings.TrimSpace(tds.First().Text())
		if t, err := timeutil.ParseClock(label, date); err == nil {
			g.times = append(g.times, t)
		} else {
			g.warnings = append(g.warnings, domain.ParseWarning{
				Row:    rowIdx,
				Kind:   domain.WarningUnparsableTime,
				Detail: fmt.Sprintf("label %q", label),
			})
		}

		cells := tds.Slice(1, goquery.ToEnd)
		next := 0
		missing := 0
		states := make([]bool, columns)
		for col := 0; col < columns; col++ {
			if span := pending[col]; span != nil {
				states[col] = span.available
				span.rowsLeft--
				if span.rowsLeft == 0 {
					pending[col] = nil
				}
				continue
			}
			if next >= cells.Length() {
				states[col] = true
				missing++
				continue
			}
			cell := cells.Eq(next)
			next++

			available := cellAvailable(cell)
			states[col] = available
			if span := rowSpan(cell); span > 1 {
				pending[col] = &pendingSpan{available: available, rowsLeft: span - 1}
			}
		}
		if missing > 0 {
			g.warnings = append(g.warnings, domain.ParseWarning{
				Row:    rowIdx,
				Kind:   domain.WarningMissingCells,
				Detail: fmt.Sprintf("%d of %d columns defaulted to available", missing, columns),
			})
		}
		g.cells = append(g.cells, states)
	}
	return g
}

// cellAvailable treats booked ("active") and blocked ("danger") markers as unavailable.
func cellAvailable(cell *goquery.Selection) bool {
	class := cell.AttrOr("class", "")
	return !strings.Contains(class, "active") && !strings.Contains(class, "danger")
}

func rowSpan(cell *goquery.Selection) int {
	raw, ok := cell.Attr("rowspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// slotDuration is the gap between the first two parsed labels, or 30 minutes.
func (g grid) slotDuration() time.Duration {
	if len(g.times) < 2 {
		return defaultSlotDuration
	}
	if d := g.times[1].Sub(g.times[0]); d > 0 {
		return d
	}
	return defaultSlotDuration
}

// schedule turns the grid into per-court free runs for the page's court ids.
// Grid rows are paired positionally with parsed labels; rows past the last label are ignored.
func (g grid) schedule(date time.Time, page int) domain.CourtSchedule {
	ids := domain.PageCourtIDs(page)
	slot := g.slotDuration()
	out := domain.CourtSchedule{
		Date:                timeutil.StartOfDay(date),
		CourtAvailabilities: make([]domain.CourtAvailability, 0, len(ids)),
		Warnings:            g.warnings,
	}

	for col, id := range ids {
		var intervals []domain.DateRange
		var open *time.Time
		for rowIdx, row := range g.cells {
			if rowIdx >= len(g.times) {
				break
			}
			at := g.times[rowIdx]
			if col < len(row) && row[col] {
				if open == nil {
					open = &at
				}
				continue
			}
			if open != nil {
				intervals = append(intervals, domain.NewDateRange(*open, at))
				open = nil
			}
		}
		if open != nil {
			intervals = append(intervals, domain.NewDateRange(*open, g.times[len(g.times)-1].Add(slot)))
		}
		out.CourtAvailabilities = append(out.CourtAvailabilities, domain.CourtAvailability{
			CourtID:      id,
			Availability: intervals,
		})
	}
	return out
}

// render draws the grid as text, one labelled row per line: '.' free, '*' booked.
func (g grid) render() string {
	var sb strings.Builder
	for rowIdx, t := range g.times {
		if rowIdx >= len(g.cells) {
			break
		}
		sb.WriteString(timeutil.FormatClock(t))
		sb.WriteByte(' ')
		for _, free := range g.cells[rowIdx] {
			if free {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('*')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
