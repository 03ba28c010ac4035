package view

import (
	"fmt"
	"time"

	"cleanreports/internal/domain"
)

// MonthOptionCount is how many recent months the month filter offers.
const MonthOptionCount = 12

// Option is one entry of a select box.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FilterBar is the rendered store/month filter form.
type FilterBar struct {
	Stores     []Option
	Months     []Option
	HasFilters bool
	ClearURL   string
}

// MonthLabel renders "2025-03" as "2025年3月".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%d年%d月", t.Year(), int(t.Month()))
}

// MonthOptions lists the n months ending with now's month, newest first.
func MonthOptions(now time.Time, n int) []Option {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	opts := make([]Option, 0, n)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, -i, 0)
		opts = append(opts, Option{Value: m.Format(domain.MonthLayout), Label: MonthLabel(m)})
	}
	return opts
}

// NewFilterBar builds the filter form. An active value missing from the
// options is added so the form still shows it.
func NewFilterBar(stores []string, filter domain.FilterRequest, now time.Time) FilterBar {
	bar := FilterBar{
		HasFilters: filter.HasFilters(),
		ClearURL:   DashboardPath,
	}

	found := false
	for _, s := range stores {
		selected := s == filter.Store
		found = found || selected
		bar.Stores = append(bar.Stores, Option{Value: s, Label: s, Selected: selected})
	}
	if filter.Store != "" && !found {
		bar.Stores = append(bar.Stores, Option{Value: filter.Store, Label: filter.Store, Selected: true})
	}

	found = false
	for _, m := range MonthOptions(now, MonthOptionCount) {
		m.Selected = m.Value == filter.Month
		found = found || m.Selected
		bar.Months = append(bar.Months, m)
	}
	if filter.Month != "" && !found {
		if t, err := time.Parse(domain.MonthLayout, filter.Month); err == nil {
			bar.Months = append(bar.Months, Option{Value: filter.Month, Label: MonthLabel(t), Selected: true})
		}
	}
	return bar
}
