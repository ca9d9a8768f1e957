package cartrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isUniqueViolation reports a unique-constraint violation (SQLSTATE 23505).
// Two first-ever saves for one customer race on the primary key; the loser
// gets the same conflict error as a stale versioned write.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Get retrieves the customer's cart with its lines.
func (r *GormCartRepository) Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "customer_id = ?", customerID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("customerId", customerID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts the cart. A fresh aggregate (version 0) inserts; a loaded one
// updates under its version guard. Lines are rewritten wholesale either way.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version

	if loadedVersion == 0 {
		dto.Version = 1
		err := r.db.WithContext(ctx).Create(&dto).Error
		if isUniqueViolation(err) {
			return errs.NewConcurrencyConflictError("cart", aggregate.CustomerID().String())
		}
		return err
	}

	items := dto.Items
	dto.Items = nil

	result := r.db.WithContext(ctx).Model(&CartDTO{}).
		Where("customer_id = ? AND version = ?", dto.CustomerID, loadedVersion).
		Updates(map[string]any{
			"restaurant_id": dto.RestaurantID,
			"updated_at":    dto.UpdatedAt,
			"version":       loadedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("cart", aggregate.CustomerID().String())
	}

	err := r.db.WithContext(ctx).
		Where("cart_customer_id = ?", dto.CustomerID).
		Delete(&CartItemDTO{}).Error
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&items).Error
}

// Delete removes the customer's cart and its lines. Deleting an absent cart
// is a no-op.
func (r *GormCartRepository) Delete(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Where("cart_customer_id = ?", customerID.Bytes()).
		Delete(&CartItemDTO{}).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Delete(&CartDTO{}).Error
}

// DeleteVersioned removes the cart under the version loaded with the
// aggregate. The guard is a version bump on the cart row, so a stale caller
// fails before any line is touched.
func (r *GormCartRepository) DeleteVersioned(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	customerID := aggregate.CustomerID()

	result := r.db.WithContext(ctx).Model(&CartDTO{}).
		Where("customer_id = ? AND version = ?", customerID.Bytes(), aggregate.Version()).
		Update("version", aggregate.Version()+1)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("cart", customerID.String())
	}

	return r.Delete(ctx, customerID)
}

// PurgeAbandoned deletes carts untouched since the cutoff, returning how
// many carts were removed.
func (r *GormCartRepository) PurgeAbandoned(ctx context.Context, cutoff time.Time) (int64, error) {
	err := r.db.WithContext(ctx).
		Where("cart_customer_id IN (?)",
			r.db.Model(&CartDTO{}).Select("customer_id").Where("updated_at < ?", cutoff)).
		Delete(&CartItemDTO{}).Error
	if err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&CartDTO{})

	return result.RowsAffected, result.Error
}
