package order

import (
	"errors"

	"marketplace/internal/pkg/errs"
)

// DeliveryAddress is the address snapshot copied from the customer's saved
// address at order-creation time. It is a value object: the order never
// holds a live reference to the address book.
type DeliveryAddress struct {
	street     string
	city       string
	postalCode string
	notes      string
}

// NewDeliveryAddress creates a validated address snapshot.
// Notes are optional; everything else is required.
func NewDeliveryAddress(street, city, postalCode, notes string) (DeliveryAddress, error) {
	addr := DeliveryAddress{notes: notes}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCity(city),
		addr.setPostalCode(postalCode),
	); err != nil {
		return DeliveryAddress{}, err
	}

	return addr, nil
}

// Validate rejects a zero-value address.
func (a DeliveryAddress) Validate() error {
	if a.street == "" {
		return errs.NewValueIsRequiredError("deliveryAddress must be created via NewDeliveryAddress")
	}
	return nil
}

// Street returns the street line of the snapshot.
func (a DeliveryAddress) Street() string {
	return a.street
}

// City returns the city of the snapshot.
func (a DeliveryAddress) City() string {
	return a.city
}

// PostalCode returns the postal code of the snapshot.
func (a DeliveryAddress) PostalCode() string {
	return a.postalCode
}

// Notes returns optional delivery instructions.
func (a DeliveryAddress) Notes() string {
	return a.notes
}

func (a *DeliveryAddress) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *DeliveryAddress) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *DeliveryAddress) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}
