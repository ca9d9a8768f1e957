package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// LineItem is an immutable historical record of one ordered catalog item:
// the name and unit price are captured at order-creation time and never
// re-read from the live catalog, so completed orders keep their meaning
// after menus change.
type LineItem struct {
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
}

// NewLineItem creates a validated line-item snapshot.
func NewLineItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	item := LineItem{}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	item.unitPrice = unitPrice
	return item, nil
}

// MenuItemID returns the catalog item this line was snapshotted from.
func (i LineItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the item name captured at purchase time.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the unit price captured at purchase time.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Subtotal returns unit price multiplied by quantity.
func (i LineItem) Subtotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

func (i *LineItem) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("itemName")
	}
	i.name = name
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
