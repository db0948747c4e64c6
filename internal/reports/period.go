package reports

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"

	"github.com/financehub-dev/financehub/internal/model"
)

// MonthFormat is the layout accepted by ParseMonth.
const MonthFormat = "2006-01"

// Month is a closed calendar-month range.
type Month struct {
	Start model.Date
	End   model.Date
}

// MonthOf returns the month containing d.
func MonthOf(d model.Date) Month {
	n := now.With(d.Time())
	return Month{
		Start: model.DateOf(n.BeginningOfMonth()),
		End:   model.DateOf(n.EndOfMonth()),
	}
}

// ParseMonth parses "YYYY-MM". An empty string selects the month of today.
func ParseMonth(s string, today model.Date) (Month, error) {
	if s == "" {
		return MonthOf(today), nil
	}
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return Month{}, fmt.Errorf("parsing month %q: expected YYYY-MM", s)
	}
	return MonthOf(model.DateOf(t)), nil
}

// Contains reports whether d falls inside the month.
func (m Month) Contains(d model.Date) bool { return d.Between(m.Start, m.End) }

// Prev returns the preceding month.
func (m Month) Prev() Month { return MonthOf(m.Start.AddDays(-1)) }

// Next returns the following month.
func (m Month) Next() Month { return MonthOf(m.End.AddDays(1)) }

// Key returns the month as "YYYY-MM".
func (m Month) Key() string { return m.Start.Format(MonthFormat) }

// Label returns the month as "March 2024".
func (m Month) Label() string { return m.Start.Format("January 2006") }

// weekStart returns the first day of the week containing d.
func weekStart(d model.Date, first time.Weekday) model.Date {
	cfg := &now.Config{WeekStartDay: first}
	return model.DateOf(cfg.With(d.Time()).BeginningOfWeek())
}
