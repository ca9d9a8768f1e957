package orderrepo

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// CreateActiveDeliveryIndex installs a partial unique index enforcing that a
// driver holds at most one order in a driver-active status. The application
// checks the rule first for a precise error; the index is what makes it hold
// under concurrent claims. Runs after migrations.
func CreateActiveDeliveryIndex(db *gorm.DB) error {
	return db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_active_driver
		 ON orders (driver_id) WHERE status IN ('%s', '%s')`,
		order.StatusDriverAssigned, order.StatusOnTheWay,
	)).Error
}

// isUniqueViolation reports a unique-constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
