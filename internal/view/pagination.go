package view

import (
	"fmt"
	"net/url"
	"strconv"

	"cleanreports/internal/domain"
)

// DashboardPath is the listing page that pagination and filter links point at.
const DashboardPath = "/dashboard"

// PageLink is a navigation button; a disabled link has no URL.
type PageLink struct {
	URL      string
	Disabled bool
}

// Pagination is the rendered pagination bar.
type Pagination struct {
	Page       int
	TotalPages int
	TotalCount int
	Start      int
	End        int
	// Single is true when everything fits on one page; only Summary is shown.
	Single  bool
	Summary string
	First   PageLink
	Prev    PageLink
	Next    PageLink
	Last    PageLink
}

// ListingURL builds a dashboard URL carrying the active filters. Page 0 omits the page parameter.
func ListingURL(filter domain.FilterRequest, page int) string {
	q := url.Values{}
	if filter.Store != "" {
		q.Set("store", filter.Store)
	}
	if filter.Month != "" {
		q.Set("month", filter.Month)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return DashboardPath
	}
	return DashboardPath + "?" + q.Encode()
}

func pageLink(filter domain.FilterRequest, page int, enabled bool) PageLink {
	if !enabled {
		return PageLink{Disabled: true}
	}
	return PageLink{URL: ListingURL(filter, page)}
}

// NewPagination builds the pagination bar for a resolved page.
func NewPagination(result *domain.ResultPage, filter domain.FilterRequest) Pagination {
	p := Pagination{
		Page:       result.Page,
		TotalPages: result.TotalPages,
		TotalCount: result.TotalCount,
	}

	if result.TotalPages <= 1 {
		p.Single = true
		p.Summary = fmt.Sprintf("全 %d 件", result.TotalCount)
		return p
	}

	p.Start = (result.Page-1)*result.PageSize + 1
	p.End = result.Page * result.PageSize
	if p.End > result.TotalCount {
		p.End = result.TotalCount
	}
	if p.Start > p.End {
		// Past the last page: nothing on screen.
		p.Start, p.End = 0, 0
	}
	p.Summary = fmt.Sprintf("%d 件中 %d〜%d 件を表示", result.TotalCount, p.Start, p.End)

	hasPrev := result.Page > 1
	hasNext := result.Page < result.TotalPages
	p.First = pageLink(filter, 1, hasPrev)
	p.Prev = pageLink(filter, result.Page-1, hasPrev)
	p.Next = pageLink(filter, result.Page+1, hasNext)
	p.Last = pageLink(filter, result.TotalPages, hasNext)
	return p
}
