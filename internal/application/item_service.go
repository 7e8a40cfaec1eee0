package application

import (
	"context"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	userDomain "github.com/gearshare/service-rental/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaveItemRequest holds the editable listing fields for create and update.
// Location coordinates are accepted but stored as zero; geocoding is out of
// scope.
type SaveItemRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	Category         string   `json:"category" binding:"required"`
	PricePerDayCents int64    `json:"price_per_day_cents" binding:"required"`
	DepositCents     int64    `json:"deposit_cents"`
	Images           []string `json:"images"`
	Address          string   `json:"address"`
	UnavailableDates []string `json:"unavailable_dates"`
}

// ListItemsQuery holds the recognized listing query options.
type ListItemsQuery struct {
	Category  string
	HostID    *uuid.UUID
	SortBy    string
	SortOrder string
	Limit     int
}

// ItemDTO is the response representation of an item.
type ItemDTO struct {
	ID               uuid.UUID           `json:"id"`
	HostID           uuid.UUID           `json:"host_id"`
	HostName         string              `json:"host_name"`
	HostAvatarURL    string              `json:"host_avatar_url,omitempty"`
	Title            string              `json:"title"`
	Description      string              `json:"description,omitempty"`
	Category         string              `json:"category"`
	PricePerDayCents int64               `json:"price_per_day_cents"`
	DepositCents     int64               `json:"deposit_cents"`
	Currency         string              `json:"currency"`
	Images           []string            `json:"images"`
	Location         itemDomain.Location `json:"location"`
	UnavailableDates []string            `json:"unavailable_dates,omitempty"`
	AverageRating    float64             `json:"average_rating"`
	ReviewCount      int                 `json:"review_count"`
	IsPublished      bool                `json:"is_published"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ItemService is the application service orchestrating listing use cases.
type ItemService struct {
	items  itemDomain.ItemRepository
	users  userDomain.UserRepository
	logger *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(items itemDomain.ItemRepository, users userDomain.UserRepository, logger *zap.Logger) *ItemService {
	return &ItemService{items: items, users: users, logger: logger}
}

// CreateItem creates an unpublished listing for the host, denormalizing the
// host's current display name and avatar onto it.
func (s *ItemService) CreateItem(ctx context.Context, hostID uuid.UUID, req SaveItemRequest) (*ItemDTO, error) {
	host, err := s.users.FindByID(ctx, hostID)
	if err != nil {
		return nil, err
	}

	category, err := itemDomain.ParseCategory(req.Category)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	it, err := itemDomain.NewItem(
		hostID,
		itemDomain.HostProfile{Name: host.Name(), AvatarURL: host.AvatarURL()},
		req.Title,
		req.Description,
		category,
		req.PricePerDayCents,
		req.DepositCents,
		"USD",
		req.Images,
		itemDomain.Location{Address: req.Address},
		req.UnavailableDates,
	)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item created",
		zap.String("item_id", it.ID().String()),
		zap.String("host_id", hostID.String()),
	)

	result := toItemDTO(it)
	return &result, nil
}

// GetItem retrieves a single item by ID.
func (s *ItemService) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	result := toItemDTO(it)
	return &result, nil
}

// ListItems materializes a listing query. Without a host filter only
// published items are returned; with one, the host's drafts are included.
func (s *ItemService) ListItems(ctx context.Context, query ListItemsQuery) ([]ItemDTO, error) {
	filter := itemDomain.ListFilter{
		HostID: query.HostID,
		Limit:  query.Limit,
	}

	if query.Category != "" {
		category, err := itemDomain.ParseCategory(query.Category)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filter.Category = &category
	}
	if query.SortBy != "" {
		sortBy, err := itemDomain.ParseSortField(query.SortBy)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filter.SortBy = sortBy
	}
	if query.SortOrder != "" {
		order := itemDomain.SortOrder(query.SortOrder)
		if !order.IsValid() {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid sort order: %s", query.SortOrder))
		}
		filter.SortOrder = order
	}
	if query.Limit < 0 {
		return nil, domain.NewValidationError("limit cannot be negative")
	}

	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos, nil
}

// UpdateItem replaces the editable fields of an item the actor owns.
func (s *ItemService) UpdateItem(ctx context.Context, actorID, itemID uuid.UUID, req SaveItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(actorID) {
		return nil, domain.NewForbiddenError("only the host can update an item")
	}

	category, err := itemDomain.ParseCategory(req.Category)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	location := it.Location()
	location.Address = req.Address

	if err := it.UpdateDetails(
		req.Title,
		req.Description,
		category,
		req.PricePerDayCents,
		req.DepositCents,
		req.Images,
		location,
		req.UnavailableDates,
	); err != nil {
		return nil, err
	}

	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	result := toItemDTO(it)
	return &result, nil
}

// PublishItem makes an item the actor owns publicly visible.
func (s *ItemService) PublishItem(ctx context.Context, actorID, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(actorID) {
		return nil, domain.NewForbiddenError("only the host can publish an item")
	}
	if err := it.Publish(); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	result := toItemDTO(it)
	return &result, nil
}

// UnpublishItem hides an item the actor owns from public listings.
func (s *ItemService) UnpublishItem(ctx context.Context, actorID, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(actorID) {
		return nil, domain.NewForbiddenError("only the host can unpublish an item")
	}
	it.Unpublish()
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	result := toItemDTO(it)
	return &result, nil
}

// DeleteItem removes an item the actor owns. Bookings for the item are not
// cascade-deleted; they keep their own snapshot of what was booked.
func (s *ItemService) DeleteItem(ctx context.Context, actorID, itemID uuid.UUID) error {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !it.IsOwnedBy(actorID) {
		return domain.NewForbiddenError("only the host can delete an item")
	}
	return s.items.Delete(ctx, itemID)
}

// SyncHostProfile rewrites the denormalized host display fields on all of a
// host's items. Invoked by the user-event consumer after a profile edit.
func (s *ItemService) SyncHostProfile(ctx context.Context, hostID uuid.UUID, name, avatarURL string) error {
	return s.items.UpdateHostProfile(ctx, hostID, itemDomain.HostProfile{Name: name, AvatarURL: avatarURL})
}

// --- Helpers ---

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:               it.ID(),
		HostID:           it.HostID(),
		HostName:         it.HostProfile().Name,
		HostAvatarURL:    it.HostProfile().AvatarURL,
		Title:            it.Title(),
		Description:      it.Description(),
		Category:         string(it.Category()),
		PricePerDayCents: it.PricePerDayCents(),
		DepositCents:     it.DepositCents(),
		Currency:         it.Currency(),
		Images:           it.Images(),
		Location:         it.Location(),
		UnavailableDates: it.UnavailableDates(),
		AverageRating:    it.AverageRating(),
		ReviewCount:      it.ReviewCount(),
		IsPublished:      it.IsPublished(),
		CreatedAt:        it.CreatedAt(),
	}
}
