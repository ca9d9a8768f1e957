package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1

	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the mutable part of an existing order: driver assignment,
// statuses and timestamps. Line items and money are immutable after
// checkout and are deliberately not written. The write is guarded by the
// version loaded with the aggregate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := aggregate.Version()

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(map[string]any{
			"driver_id":      dto.DriverID,
			"status":         dto.Status,
			"payment_status": dto.PaymentStatus,
			"confirmed_at":   dto.ConfirmedAt,
			"ready_at":       dto.ReadyAt,
			"picked_up_at":   dto.PickedUpAt,
			"delivered_at":   dto.DeliveredAt,
			"version":        loadedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order with its line items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// HasActiveDelivery reports whether the driver holds an order in a
// driver-active status.
func (r *GormOrderRepository) HasActiveDelivery(ctx context.Context, driverID kernel.UUID) (bool, error) {
	if err := driverID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("driver_id = ? AND status IN ?", driverID.Bytes(), []string{
			order.StatusDriverAssigned.String(),
			order.StatusOnTheWay.String(),
		}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Claim performs the atomic driver assignment: a single conditional update
// keyed on the ready-for-pickup status and an empty driver slot. When the
// update touches no row, the order is re-read to report the precise reason.
// A driver who already holds an active order trips the active-delivery index
// and gets a DriverHasActiveDeliveryError.
func (r *GormOrderRepository) Claim(ctx context.Context, orderID, driverID kernel.UUID) (*order.Order, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND driver_id IS NULL",
			orderID.Bytes(), order.StatusReadyForPickup.String()).
		Updates(map[string]any{
			"driver_id": driverID.Bytes(),
			"status":    order.StatusDriverAssigned.String(),
			"version":   gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, order.NewDriverHasActiveDeliveryError(driverID)
		}
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.explainFailedClaim(ctx, orderID)
	}

	return r.Get(ctx, orderID)
}

// explainFailedClaim distinguishes why the conditional claim matched
// nothing: missing order, a driver already assigned, or a wrong status.
func (r *GormOrderRepository) explainFailedClaim(ctx context.Context, orderID kernel.UUID) error {
	current, err := r.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if driver := current.Driver(); driver != nil {
		return order.NewAlreadyClaimedError(orderID, *driver)
	}

	return errs.NewInvalidStateTransitionError(
		current.Status().String(),
		order.StatusDriverAssigned.String(),
		"order is not ready for pickup",
	)
}

// GetPendingOlderThan retrieves pending orders created before the cutoff.
func (r *GormOrderRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Find(&dtos, "status = ? AND created_at < ?", order.StatusPending.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
