package view

import (
	"time"

	"cleanreports/internal/domain"
)

// Page text.
const (
	AppName          = "Sakurai Cleaning"
	DashboardTitle   = "清掃報告レポート"
	DashboardLead    = "最新の清掃状況と活動ログを確認できます。"
	EmptyTitle       = "レポートがありません"
	EmptyDescription = "現在表示できる清掃報告は見つかりませんでした。"
	LoadErrorMessage = "レポートの取得に失敗しました。しばらくしてから再度お試しください。"
)

// DashboardPage is everything the dashboard template renders.
type DashboardPage struct {
	AppName    string
	Title      string
	Lead       string
	UserEmail  string
	Cards      []ReportCard
	Empty      bool
	EmptyTitle string
	EmptyText  string
	Error      string
	Filters    FilterBar
	Pagination Pagination
}

// NewDashboardPage assembles the dashboard for a resolved page.
func NewDashboardPage(email string, result *domain.ResultPage, stores []string, filter domain.FilterRequest, now time.Time) DashboardPage {
	filter.Page = result.Page
	cards := NewReportCards(result.Rows)
	return DashboardPage{
		AppName:    AppName,
		Title:      DashboardTitle,
		Lead:       DashboardLead,
		UserEmail:  email,
		Cards:      cards,
		Empty:      len(cards) == 0,
		EmptyTitle: EmptyTitle,
		EmptyText:  EmptyDescription,
		Filters:    NewFilterBar(stores, filter, now),
		Pagination: NewPagination(result, filter),
	}
}

// LoginPage is the login form model.
type LoginPage struct {
	AppName string
	Email   string
	Error   string
}
