package lookuprepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLookupRepository implements ports.CatalogClient and
// ports.AddressClient over the shared database.
type GormLookupRepository struct {
	db *gorm.DB
}

// NewGormLookupRepository creates a new GORM lookup repository.
func NewGormLookupRepository(db *gorm.DB) *GormLookupRepository {
	return &GormLookupRepository{db: db}
}

// GetMenuItem retrieves a single menu item snapshot.
func (r *GormLookupRepository) GetMenuItem(ctx context.Context, id kernel.UUID) (ports.MenuItemSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ports.MenuItemSnapshot{}, err
	}

	var dto MenuItemDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.MenuItemSnapshot{}, errs.NewObjectNotFoundError("menuItemId", id.String())
	}
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}

	return menuItemToSnapshot(dto)
}

// GetMenuItems retrieves the given menu items, preserving request order and
// failing on the first missing identifier.
func (r *GormLookupRepository) GetMenuItems(ctx context.Context, ids []kernel.UUID) ([]ports.MenuItemSnapshot, error) {
	if len(ids) == 0 {
		return []ports.MenuItemSnapshot{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]MenuItemDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	snapshots := make([]ports.MenuItemSnapshot, 0, len(ids))
	for _, id := range ids {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("menuItemId", id.String())
		}
		snapshot, err := menuItemToSnapshot(dto)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// GetRestaurant retrieves a restaurant snapshot.
func (r *GormLookupRepository) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.RestaurantSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	var dto RestaurantDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.RestaurantSnapshot{}, errs.NewObjectNotFoundError("restaurantId", id.String())
	}
	if err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.RestaurantSnapshot{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	return ports.RestaurantSnapshot{
		ID:          restaurantID,
		OwnerID:     ownerID,
		Name:        dto.Name,
		IsAccepting: dto.IsAccepting,
	}, nil
}

// GetAddress retrieves a saved address snapshot.
func (r *GormLookupRepository) GetAddress(ctx context.Context, id kernel.UUID) (ports.AddressSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ports.AddressSnapshot{}, err
	}

	var dto AddressDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.AddressSnapshot{}, errs.NewObjectNotFoundError("addressId", id.String())
	}
	if err != nil {
		return ports.AddressSnapshot{}, err
	}

	addressID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.AddressSnapshot{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return ports.AddressSnapshot{}, err
	}

	return ports.AddressSnapshot{
		ID:         addressID,
		OwnerID:    ownerID,
		Street:     dto.Street,
		City:       dto.City,
		PostalCode: dto.PostalCode,
		Notes:      dto.Notes,
	}, nil
}

func menuItemToSnapshot(dto MenuItemDTO) (ports.MenuItemSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}
	unitPrice, err := kernel.NewMoneyFromCents(dto.UnitPriceCents)
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}

	return ports.MenuItemSnapshot{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         dto.Name,
		UnitPrice:    unitPrice,
		IsAvailable:  dto.IsAvailable,
	}, nil
}
