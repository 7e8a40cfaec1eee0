package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HostID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	HostName         string          `gorm:"not null;size:100"`
	HostAvatarURL    string          `gorm:"type:text"`
	Title            string          `gorm:"not null;size:200"`
	Description      string          `gorm:"type:text"`
	Category         string          `gorm:"not null;size:30;index"`
	PricePerDayCents int64           `gorm:"not null"`
	DepositCents     int64           `gorm:"not null;default:0"`
	Currency         string          `gorm:"not null;size:3;default:'USD'"`
	Images           json.RawMessage `gorm:"type:jsonb;not null"`
	Location         json.RawMessage `gorm:"type:jsonb;not null"`
	UnavailableDates json.RawMessage `gorm:"type:jsonb"`
	AverageRating    float64         `gorm:"not null;default:0"`
	ReviewCount      int             `gorm:"not null;default:0"`
	IsPublished      bool            `gorm:"not null;default:false;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// sortColumns maps API sort fields to table columns.
var sortColumns = map[itemDomain.SortField]string{
	itemDomain.SortByCreatedAt:     "created_at",
	itemDomain.SortByPricePerDay:   "price_per_day_cents",
	itemDomain.SortByAverageRating: "average_rating",
}

// GormItemRepository is the GORM-based implementation of ItemRepository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID retrieves an item by its unique identifier.
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Item", id.String())
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return toDomainItem(&model)
}

// List materializes a listing query in a single round trip. Without a host
// filter only published items are visible; with one, the host sees their own
// drafts too.
func (r *GormItemRepository) List(ctx context.Context, filter itemDomain.ListFilter) ([]*itemDomain.Item, error) {
	q := r.db.WithContext(ctx).Model(&ItemModel{})

	if filter.Category != nil {
		q = q.Where("category = ?", string(*filter.Category))
	}
	if filter.HostID != nil {
		q = q.Where("host_id = ?", *filter.HostID)
	} else {
		q = q.Where("is_published = ?", true)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = itemDomain.SortByCreatedAt
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid sort field: %s", sortBy))
	}
	order := filter.SortOrder
	if order == "" {
		order = itemDomain.SortDesc
	}
	if !order.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid sort order: %s", order))
	}
	q = q.Order(fmt.Sprintf("%s %s", column, order))

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var models []ItemModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*itemDomain.Item, len(models))
	for i, m := range models {
		it, err := toDomainItem(&m)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}
	return items, nil
}

// Save persists a new item.
func (r *GormItemRepository) Save(ctx context.Context, it *itemDomain.Item) error {
	model, err := toItemModel(it)
	if err != nil {
		return fmt.Errorf("failed to convert item to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, it *itemDomain.Item) error {
	model, err := toItemModel(it)
	if err != nil {
		return fmt.Errorf("failed to convert item to model: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"host_name":           model.HostName,
			"host_avatar_url":     model.HostAvatarURL,
			"title":               model.Title,
			"description":         model.Description,
			"category":            model.Category,
			"price_per_day_cents": model.PricePerDayCents,
			"deposit_cents":       model.DepositCents,
			"images":              model.Images,
			"location":            model.Location,
			"unavailable_dates":   model.UnavailableDates,
			"is_published":        model.IsPublished,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Item", model.ID.String())
	}
	return nil
}

// Delete removes an item. Bookings referencing it are left in place; they
// carry their own denormalized snapshot of what was booked.
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ItemModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Item", id.String())
	}
	return nil
}

// UpdateHostProfile rewrites the denormalized host display fields on every
// item owned by the given host.
func (r *GormItemRepository) UpdateHostProfile(ctx context.Context, hostID uuid.UUID, profile itemDomain.HostProfile) error {
	err := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("host_id = ?", hostID).
		Updates(map[string]interface{}{
			"host_name":       profile.Name,
			"host_avatar_url": profile.AvatarURL,
			"updated_at":      time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update host profile on items: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toItemModel(it *itemDomain.Item) (*ItemModel, error) {
	images, err := json.Marshal(it.Images())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}
	location, err := json.Marshal(it.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal location: %w", err)
	}
	unavailable, err := json.Marshal(it.UnavailableDates())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal unavailable dates: %w", err)
	}

	return &ItemModel{
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
		Images:           images,
		Location:         location,
		UnavailableDates: unavailable,
		AverageRating:    it.AverageRating(),
		ReviewCount:      it.ReviewCount(),
		IsPublished:      it.IsPublished(),
		CreatedAt:        it.CreatedAt(),
		UpdatedAt:        it.UpdatedAt(),
	}, nil
}

func toDomainItem(m *ItemModel) (*itemDomain.Item, error) {
	var images []string
	if err := json.Unmarshal(m.Images, &images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	var location itemDomain.Location
	if err := json.Unmarshal(m.Location, &location); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location: %w", err)
	}
	var unavailable []string
	if len(m.UnavailableDates) > 0 {
		if err := json.Unmarshal(m.UnavailableDates, &unavailable); err != nil {
			return nil, fmt.Errorf("failed to unmarshal unavailable dates: %w", err)
		}
	}

	category, err := itemDomain.ParseCategory(m.Category)
	if err != nil {
		return nil, err
	}

	return itemDomain.ReconstructItem(
		m.ID,
		m.HostID,
		itemDomain.HostProfile{Name: m.HostName, AvatarURL: m.HostAvatarURL},
		m.Title,
		m.Description,
		category,
		m.PricePerDayCents,
		m.DepositCents,
		m.Currency,
		images,
		location,
		unavailable,
		m.AverageRating,
		m.ReviewCount,
		m.IsPublished,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
