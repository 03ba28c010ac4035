package view_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanreports/internal/domain"
	"cleanreports/internal/view"
)

func TestNewDashboardPage_Empty(t *testing.T) {
	p := view.NewDashboardPage("admin@test.com", domain.EmptyResultPage(1, 12), nil, domain.FilterRequest{Page: 1}, fixedNow)

	assert.True(t, p.Empty)
	assert.Equal(t, view.EmptyTitle, p.EmptyTitle)
	assert.Equal(t, "全 0 件", p.Pagination.Summary)
	assert.Equal(t, "admin@test.com", p.UserEmail)
}

func TestNewDashboardPage_WithRows(t *testing.T) {
	result := &domain.ResultPage{
		Rows:       []domain.Report{{ID: "1", Status: "完了"}, {ID: "2", Status: "完了"}},
		TotalCount: 2,
		TotalPages: 1,
		Page:       1,
		PageSize:   12,
	}
	p := view.NewDashboardPage("a@b.c", result, []string{"A店"}, domain.FilterRequest{Page: 1}, fixedNow)

	assert.False(t, p.Empty)
	require.Len(t, p.Cards, 2)
	assert.Equal(t, "1", p.Cards[0].ID)
	assert.Equal(t, "2", p.Cards[1].ID)
}

func TestTemplates_RenderDashboard(t *testing.T) {
	tmpl, err := view.Templates()
	require.NoError(t, err)

	result := &domain.ResultPage{
		Rows: []domain.Report{{
			ID:          "1",
			ReportDate:  "2025-02-10",
			StoreNames:  domain.StoreNames{"渋谷店"},
			CleanerName: "Sato",
			Status:      "完了",
			ReportLink:  "https://notion.so/1",
		}},
		TotalCount: 30,
		TotalPages: 3,
		Page:       2,
		PageSize:   12,
	}
	page := view.NewDashboardPage("admin@test.com", result, []string{"渋谷店"}, domain.FilterRequest{Page: 2, Store: "渋谷店"}, fixedNow)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, view.TemplateDashboard, page))

	html := buf.String()
	assert.Contains(t, html, "清掃報告レポート")
	assert.Contains(t, html, "渋谷店")
	assert.Contains(t, html, "30 件中 13〜24 件を表示")
	assert.Contains(t, html, "Notionで開く")
	assert.Contains(t, html, "ログアウト")
	assert.Contains(t, html, "クリア")
}

func TestTemplates_RenderLogin(t *testing.T) {
	tmpl, err := view.Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, view.TemplateLogin, view.LoginPage{
		AppName: view.AppName,
		Email:   "admin@test.com",
		Error:   "Invalid login credentials",
	}))

	html := buf.String()
	assert.Contains(t, html, "管理者ログイン")
	assert.Contains(t, html, "Invalid login credentials")
	assert.Contains(t, html, `value="admin@test.com"`)
}
