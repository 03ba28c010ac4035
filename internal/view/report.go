// Package view turns resolved listing pages into the data the dashboard
// templates render. Everything here is a pure function of its inputs.
package view

import (
	"net/url"
	"strings"

	"cleanreports/internal/domain"
)

// Fallback labels for missing report fields.
const (
	UnknownStatus = "未完了"
	UnknownDate   = "日付不明"
	UnknownStore  = "店舗名不明"
)

// BadgeVariant selects the colour and icon of a status badge.
type BadgeVariant string

const (
	BadgeComplete   BadgeVariant = "complete"
	BadgeInProgress BadgeVariant = "progress"
	BadgePending    BadgeVariant = "pending"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/notionists/svg"

// Badge is a rendered status badge.
type Badge struct {
	Label   string
	Variant BadgeVariant
	Icon    string
}

// DisplayStatus returns the status as shown to users.
func DisplayStatus(status string) string {
	if strings.TrimSpace(status) == "" {
		return UnknownStatus
	}
	return status
}

// StatusBadge picks the badge for a status: 完 wins over 中, anything else is pending.
func StatusBadge(status string) Badge {
	label := DisplayStatus(status)
	switch {
	case strings.Contains(label, "完"):
		return Badge{Label: label, Variant: BadgeComplete, Icon: "check-circle"}
	case strings.Contains(label, "中"):
		return Badge{Label: label, Variant: BadgeInProgress, Icon: "clock"}
	default:
		return Badge{Label: label, Variant: BadgePending, Icon: "alert-circle"}
	}
}

// FormatDate keeps only the calendar date of a date or timestamp string.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return UnknownDate
	}
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}

// DisplayStore returns the first store of a report or the unknown-store label.
func DisplayStore(names domain.StoreNames) string {
	if name := names.First(); name != "" {
		return name
	}
	return UnknownStore
}

// AvatarURL returns the generated avatar image for a cleaner.
func AvatarURL(cleaner string) string {
	return avatarBaseURL + "?seed=" + url.QueryEscape(cleaner)
}

// StatusSentence explains a status in the detail overlay.
func StatusSentence(status string) string {
	label := status
	if strings.TrimSpace(label) == "" {
		label = "ステータス不明"
	}
	sentence := "この報告は " + label + " です。"
	if StatusBadge(status).Variant == BadgeComplete {
		return sentence + "すべての清掃作業が完了し、報告が提出されました。"
	}
	return sentence + "現在作業中または確認待ちです。"
}

// ReportCard is one report as rendered in the gallery and its detail overlay.
type ReportCard struct {
	ID         string
	Store      string
	Date       string
	Cleaner    string
	Badge      Badge
	Thumbnail  string
	Photos     []string
	AvatarURL  string
	StatusText string
	ReportLink string
	PlanName   string
	UsageTime  string
	Category   string
	CreatedAt  string
}

// NewReportCard builds the card for a report.
func NewReportCard(r domain.Report) ReportCard {
	card := ReportCard{
		ID:         r.ID,
		Store:      DisplayStore(r.StoreNames),
		Date:       FormatDate(r.ReportDate),
		Cleaner:    r.CleanerName,
		Badge:      StatusBadge(r.Status),
		Photos:     r.PhotoPaths,
		AvatarURL:  AvatarURL(r.CleanerName),
		StatusText: StatusSentence(r.Status),
		ReportLink: r.ReportLink,
		PlanName:   r.PlanName,
		UsageTime:  r.UsageTime,
		Category:   r.Category,
	}
	if len(r.PhotoPaths) > 0 {
		card.Thumbnail = r.PhotoPaths[0]
	}
	if r.CreatedAt != nil {
		card.CreatedAt = r.CreatedAt.Format("2006-01-02 15:04")
	}
	return card
}

// NewReportCards builds cards for every row, preserving order.
func NewReportCards(rows []domain.Report) []ReportCard {
	cards := make([]ReportCard, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, NewReportCard(r))
	}
	return cards
}
