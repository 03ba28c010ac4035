package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cleanreports/internal/domain"
	"cleanreports/internal/view"
)

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status  string
		label   string
		variant view.BadgeVariant
	}{
		{"完了", "完了", view.BadgeComplete},
		{"作業中", "作業中", view.BadgeInProgress},
		{"完了確認中", "完了確認中", view.BadgeComplete},
		{"未着手", "未着手", view.BadgePending},
		{"", view.UnknownStatus, view.BadgePending},
		{"   ", view.UnknownStatus, view.BadgePending},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			b := view.StatusBadge(tt.status)
			assert.Equal(t, tt.label, b.Label)
			assert.Equal(t, tt.variant, b.Variant)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-03-14", view.FormatDate("2025-03-14"))
	assert.Equal(t, "2025-03-14", view.FormatDate("2025-03-14T09:30:00+09:00"))
	assert.Equal(t, view.UnknownDate, view.FormatDate(""))
}

func TestDisplayStore(t *testing.T) {
	assert.Equal(t, "渋谷店", view.DisplayStore(domain.StoreNames{" ", "渋谷店"}))
	assert.Equal(t, view.UnknownStore, view.DisplayStore(nil))
}

func TestAvatarURL_EscapesSeed(t *testing.T) {
	assert.Equal(t, "https://api.dicebear.com/7.x/notionists/svg?seed=%E5%B1%B1%E7%94%B0+%E5%A4%AA%E9%83%8E", view.AvatarURL("山田 太郎"))
}

func TestStatusSentence(t *testing.T) {
	assert.Contains(t, view.StatusSentence("完了"), "この報告は 完了 です。")
	assert.Contains(t, view.StatusSentence("完了"), "完了し")
	assert.Contains(t, view.StatusSentence("作業中"), "現在作業中または確認待ちです。")
	assert.Contains(t, view.StatusSentence(""), "ステータス不明")
}

func TestNewReportCard(t *testing.T) {
	created := time.Date(2025, 3, 14, 10, 5, 0, 0, time.UTC)
	card := view.NewReportCard(domain.Report{
		ID:          "r1",
		ReportDate:  "2025-03-14",
		StoreNames:  domain.StoreNames{"渋谷店"},
		CleanerName: "Sato",
		Status:      "完了",
		PhotoPaths:  []string{"https://img/1.jpg", "https://img/2.jpg"},
		ReportLink:  "https://notion.so/r1",
		CreatedAt:   &created,
	})

	assert.Equal(t, "渋谷店", card.Store)
	assert.Equal(t, "2025-03-14", card.Date)
	assert.Equal(t, "https://img/1.jpg", card.Thumbnail)
	assert.Len(t, card.Photos, 2)
	assert.Equal(t, view.BadgeComplete, card.Badge.Variant)
	assert.Equal(t, "2025-03-14 10:05", card.CreatedAt)
	assert.Equal(t, "https://notion.so/r1", card.ReportLink)
}

func TestNewReportCard_MissingFields(t *testing.T) {
	card := view.NewReportCard(domain.Report{ID: "r2"})

	assert.Equal(t, view.UnknownStore, card.Store)
	assert.Equal(t, view.UnknownDate, card.Date)
	assert.Empty(t, card.Thumbnail)
	assert.Empty(t, card.CreatedAt)
	assert.Equal(t, view.BadgePending, card.Badge.Variant)
}
