package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanreports/internal/domain"
	"cleanreports/internal/view"
)

var fixedNow = time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)

func TestMonthOptions_CrossesYear(t *testing.T) {
	opts := view.MonthOptions(fixedNow, view.MonthOptionCount)

	require.Len(t, opts, 12)
	assert.Equal(t, "2025-02", opts[0].Value)
	assert.Equal(t, "2025年2月", opts[0].Label)
	assert.Equal(t, "2025-01", opts[1].Value)
	assert.Equal(t, "2024-12", opts[2].Value)
	assert.Equal(t, "2024年12月", opts[2].Label)
	assert.Equal(t, "2024-03", opts[11].Value)
}

func TestMonthOptions_EndOfMonth(t *testing.T) {
	opts := view.MonthOptions(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 2)
	assert.Equal(t, "2025-03", opts[0].Value)
	assert.Equal(t, "2025-02", opts[1].Value)
}

func TestNewFilterBar_MarksSelection(t *testing.T) {
	bar := view.NewFilterBar([]string{"A店", "B店"}, domain.FilterRequest{Store: "B店", Month: "2025-01"}, fixedNow)

	require.Len(t, bar.Stores, 2)
	assert.False(t, bar.Stores[0].Selected)
	assert.True(t, bar.Stores[1].Selected)
	assert.True(t, bar.Months[1].Selected)
	assert.True(t, bar.HasFilters)
	assert.Equal(t, "/dashboard", bar.ClearURL)
}

func TestNewFilterBar_KeepsUnlistedActiveValues(t *testing.T) {
	bar := view.NewFilterBar(nil, domain.FilterRequest{Store: "閉店済み", Month: "2023-05"}, fixedNow)

	require.Len(t, bar.Stores, 1)
	assert.Equal(t, view.Option{Value: "閉店済み", Label: "閉店済み", Selected: true}, bar.Stores[0])
	require.Len(t, bar.Months, 13)
	assert.Equal(t, view.Option{Value: "2023-05", Label: "2023年5月", Selected: true}, bar.Months[12])
}

func TestNewFilterBar_NoFilters(t *testing.T) {
	bar := view.NewFilterBar([]string{"A店"}, domain.FilterRequest{}, fixedNow)

	assert.False(t, bar.HasFilters)
	for _, m := range bar.Months {
		assert.False(t, m.Selected)
	}
}
