package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base persistence contract shared by all aggregates
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// AgencyRepository extends Repository with agency-scoped lookups. Agency
// scoping is the tenancy boundary: a caller holding an agency ID can never
// read another agency's rows through these methods.
type AgencyRepository[T any] interface {
	Repository[T]
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*T, error)
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter Filter) ([]T, error)
}

// Filter carries listing options. OrderBy is validated against a column
// allow-list in the persistence layer before it reaches SQL.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns the first page of twenty, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated is a page of results with totals
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated assembles a page, deriving TotalPages from the totals
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
