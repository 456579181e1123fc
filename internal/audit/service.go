// Package audit pages through the rows the worker writes into audit_logs.
package audit

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Entry is one audit_logs row.
type Entry struct {
	ID       int64          `json:"id"`
	Actor    string         `json:"actor"`
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entity_id,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
	At       time.Time      `json:"at"`
}

// Filters narrows the listing. Empty strings match everything.
type Filters struct {
	Actor    string
	Action   string
	Entity   string
	Page     int
	PageSize int
}

// Paging describes where a page sits in the listing.
type Paging struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasNext  bool `json:"has_next"`
	NextPage int  `json:"next_page,omitempty"`
	PrevPage int  `json:"prev_page,omitempty"`
}

// Result is one page of entries, newest first.
type Result struct {
	Rows   []Entry `json:"rows"`
	Paging Paging  `json:"paging"`
}

// WindowParams selects a slice of the log.
type WindowParams struct {
	Actor  string
	Action string
	Entity string
	Offset int
	Limit  int
}

// Repository reads audit_logs.
type Repository interface {
	Window(ctx context.Context, params WindowParams) ([]Entry, error)
}

// Service lists audit entries page by page.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Timeline returns the requested page. Out of range sizes are clamped.
func (s *Service) Timeline(ctx context.Context, filters Filters) (Result, error) {
	if s == nil || s.repo == nil {
		return Result{}, errors.New("audit: repository not configured")
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	rows, err := s.repo.Window(ctx, WindowParams{
		Actor:  strings.TrimSpace(filters.Actor),
		Action: strings.TrimSpace(filters.Action),
		Entity: strings.TrimSpace(filters.Entity),
		Offset: (page - 1) * pageSize,
		Limit:  pageSize + 1,
	})
	if err != nil {
		return Result{}, err
	}
	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}
	if rows == nil {
		rows = []Entry{}
	}
	paging := Paging{Page: page, PageSize: pageSize, HasNext: hasNext}
	if page > 1 {
		paging.PrevPage = page - 1
	}
	if hasNext {
		paging.NextPage = page + 1
	}
	return Result{Rows: rows, Paging: paging}, nil
}
