package item

import (
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// Location is the free-text address of an item. Coordinates are carried for
// forward compatibility but geocoding is out of scope; they are stored as
// zero.
type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// HostProfile carries the denormalized host display fields copied onto an
// item. Kept fresh by the user-event consumer when the host edits their
// profile.
type HostProfile struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Item is the aggregate root for a rentable listing.
type Item struct {
	id          uuid.UUID
	hostID      uuid.UUID
	hostProfile HostProfile

	title       string
	description string
	category    Category

	pricePerDayCents int64
	depositCents     int64
	currency         string

	images   []string
	location Location

	// Explicit host-blocked dates (YYYY-MM-DD), distinct from
	// booking-derived unavailability.
	unavailableDates []string

	averageRating float64
	reviewCount   int

	isPublished bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates a new unpublished Item listing. Rating aggregates start at
// zero and are maintained externally, never recomputed here.
func NewItem(
	hostID uuid.UUID,
	hostProfile HostProfile,
	title, description string,
	category Category,
	pricePerDayCents, depositCents int64,
	currency string,
	images []string,
	location Location,
	unavailableDates []string,
) (*Item, error) {
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if !category.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid category: %s", category))
	}
	if pricePerDayCents <= 0 {
		return nil, domain.NewValidationError("price per day must be positive")
	}
	if depositCents < 0 {
		return nil, domain.NewValidationError("deposit cannot be negative")
	}

	now := time.Now().UTC()
	return &Item{
		id:               uuid.New(),
		hostID:           hostID,
		hostProfile:      hostProfile,
		title:            title,
		description:      description,
		category:         category,
		pricePerDayCents: pricePerDayCents,
		depositCents:     depositCents,
		currency:         currency,
		images:           images,
		location:         location,
		unavailableDates: unavailableDates,
		isPublished:      false,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructItem rebuilds an Item from persistence data (no validation).
func ReconstructItem(
	id, hostID uuid.UUID,
	hostProfile HostProfile,
	title, description string,
	category Category,
	pricePerDayCents, depositCents int64,
	currency string,
	images []string,
	location Location,
	unavailableDates []string,
	averageRating float64,
	reviewCount int,
	isPublished bool,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:               id,
		hostID:           hostID,
		hostProfile:      hostProfile,
		title:            title,
		description:      description,
		category:         category,
		pricePerDayCents: pricePerDayCents,
		depositCents:     depositCents,
		currency:         currency,
		images:           images,
		location:         location,
		unavailableDates: unavailableDates,
		averageRating:    averageRating,
		reviewCount:      reviewCount,
		isPublished:      isPublished,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

// ID returns the item's unique identifier.
func (i *Item) ID() uuid.UUID { return i.id }

// HostID returns the owning host's user ID.
func (i *Item) HostID() uuid.UUID { return i.hostID }

// HostProfile returns the denormalized host display fields.
func (i *Item) HostProfile() HostProfile { return i.hostProfile }

// Title returns the listing title.
func (i *Item) Title() string { return i.title }

// Description returns the listing description.
func (i *Item) Description() string { return i.description }

// Category returns the item category.
func (i *Item) Category() Category { return i.category }

// PricePerDayCents returns the per-day rental rate in cents.
func (i *Item) PricePerDayCents() int64 { return i.pricePerDayCents }

// DepositCents returns the deposit in cents.
func (i *Item) DepositCents() int64 { return i.depositCents }

// Currency returns the currency code.
func (i *Item) Currency() string { return i.currency }

// Images returns the ordered image URLs; the first is the cover.
func (i *Item) Images() []string { return i.images }

// CoverImage returns the first image URL, or "" if there are no images.
func (i *Item) CoverImage() string {
	if len(i.images) == 0 {
		return ""
	}
	return i.images[0]
}

// Location returns the item's location.
func (i *Item) Location() Location { return i.location }

// UnavailableDates returns the host-blocked dates.
func (i *Item) UnavailableDates() []string { return i.unavailableDates }

// AverageRating returns the externally maintained rating aggregate.
func (i *Item) AverageRating() float64 { return i.averageRating }

// ReviewCount returns the externally maintained review count.
func (i *Item) ReviewCount() int { return i.reviewCount }

// IsPublished returns true if the item is visible in public listings.
func (i *Item) IsPublished() bool { return i.isPublished }

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// IsOwnedBy returns true if the given user is the item's host.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool { return userID == i.hostID }

// --- Behavior ---

// UpdateDetails replaces the editable listing fields.
func (i *Item) UpdateDetails(
	title, description string,
	category Category,
	pricePerDayCents, depositCents int64,
	images []string,
	location Location,
	unavailableDates []string,
) error {
	if title == "" {
		return domain.NewValidationError("title is required")
	}
	if !category.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid category: %s", category))
	}
	if pricePerDayCents <= 0 {
		return domain.NewValidationError("price per day must be positive")
	}
	if depositCents < 0 {
		return domain.NewValidationError("deposit cannot be negative")
	}
	if i.isPublished && len(images) == 0 {
		return domain.NewValidationError("a published item must keep at least one image")
	}
	i.title = title
	i.description = description
	i.category = category
	i.pricePerDayCents = pricePerDayCents
	i.depositCents = depositCents
	i.images = images
	i.location = location
	i.unavailableDates = unavailableDates
	i.updatedAt = time.Now().UTC()
	return nil
}

// Publish makes the item visible in public listings. An item cannot be
// published without at least one image.
func (i *Item) Publish() error {
	if len(i.images) == 0 {
		return domain.NewValidationError("an item needs at least one image before publishing")
	}
	i.isPublished = true
	i.updatedAt = time.Now().UTC()
	return nil
}

// Unpublish hides the item from public listings.
func (i *Item) Unpublish() {
	i.isPublished = false
	i.updatedAt = time.Now().UTC()
}

// SetHostProfile refreshes the denormalized host display fields.
func (i *Item) SetHostProfile(profile HostProfile) {
	i.hostProfile = profile
	i.updatedAt = time.Now().UTC()
}
