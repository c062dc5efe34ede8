package shared

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultSize is the page size used when none is requested.
	DefaultSize = 10
	// MaxSize caps the requested page size.
	MaxSize = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListFilters carries the "page, size, sort" contract plus the free-text filters.
// Page is zero-based.
type ListFilters struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string

	// Search matches name or key, Name and PersonID narrow independently.
	Search   string
	Name     string
	PersonID string
}

// ParseListFilters reads page, size, sort ("field" or "field,dir") and the
// filter parameters from q. Missing sort falls back to defaultSort.
func ParseListFilters(q url.Values, defaultSort string) ListFilters {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	// OFFSET is a bigint; past this page every result is empty anyway.
	if maxPage := math.MaxInt64/size - 1; page > maxPage {
		page = maxPage
	}

	sortParam := strings.TrimSpace(q.Get("sort"))
	if sortParam == "" {
		sortParam = defaultSort
	}
	sortBy, sortDir, _ := strings.Cut(sortParam, ",")
	sortDir = strings.ToLower(strings.TrimSpace(sortDir))
	if sortDir != SortDesc {
		sortDir = SortAsc
	}

	return ListFilters{
		Page:     page,
		Size:     size,
		SortBy:   strings.TrimSpace(sortBy),
		SortDir:  sortDir,
		Search:   strings.TrimSpace(q.Get("search")),
		Name:     strings.TrimSpace(q.Get("nome")),
		PersonID: strings.TrimSpace(q.Get("cpfCnpj")),
	}
}

// Offset returns the number of rows to skip.
func (f ListFilters) Offset() uint64 {
	return uint64(f.Page) * uint64(f.Size)
}

// OrderBy resolves SortBy through columns (JSON field → column) and returns an
// ORDER BY term. Unknown fields fall back to fallback.
func (f ListFilters) OrderBy(columns map[string]string, fallback string) string {
	col, ok := columns[f.SortBy]
	if !ok {
		col = fallback
	}
	if f.SortDir == SortDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

// Page is the paged list envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage computes the envelope metadata for one page of content.
func NewPage[T any](content []T, f ListFilters, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	size := f.Size
	if size <= 0 {
		size = DefaultSize
	}
	totalPages := int(math.Ceil(float64(total) / float64(size)))
	return Page[T]{
		Content:       content,
		PageNumber:    f.Page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         f.Page == 0,
		Last:          f.Page >= totalPages-1,
	}
}

// MapPage converts the content of a page while keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[U]{
		Content:       out,
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}
