package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SortField names an item field a listing query may order by.
type SortField string

const (
	SortByCreatedAt     SortField = "createdAt"
	SortByPricePerDay   SortField = "pricePerDay"
	SortByAverageRating SortField = "averageRating"
)

// IsValid returns true if the sort field is recognized.
func (f SortField) IsValid() bool {
	switch f {
	case SortByCreatedAt, SortByPricePerDay, SortByAverageRating:
		return true
	}
	return false
}

// ParseSortField converts a string to a SortField, returning an error if invalid.
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid sort field: %s", s)
	}
	return f, nil
}

// SortOrder is the direction of a listing query's ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid returns true if the sort order is recognized.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// ListFilter configures a listing query. When HostID is nil, only published
// items are returned; supplying a HostID disables the published-only
// restriction so owners can see their own drafts.
type ListFilter struct {
	Category  *Category
	HostID    *uuid.UUID
	SortBy    SortField // default SortByCreatedAt
	SortOrder SortOrder // default SortDesc
	Limit     int       // 0 means no cap
}

// ItemRepository defines the persistence contract for item aggregates.
type ItemRepository interface {
	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// List materializes a listing query in a single round trip, honoring
	// the filter's visibility rule, ordering and limit.
	List(ctx context.Context, filter ListFilter) ([]*Item, error)

	// Save persists a new item.
	Save(ctx context.Context, item *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, item *Item) error

	// Delete removes an item. Bookings referencing it are not touched.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateHostProfile rewrites the denormalized host display fields on
	// every item owned by the given host.
	UpdateHostProfile(ctx context.Context, hostID uuid.UUID, profile HostProfile) error
}
