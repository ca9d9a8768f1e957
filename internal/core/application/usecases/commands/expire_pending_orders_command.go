package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand represents a request to cancel orders that have
// been waiting for restaurant confirmation longer than the given age.
// Issued by the background expiry job.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	maxPendingAge time.Duration

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates an expiry request.
func NewExpirePendingOrdersCommand(maxPendingAge time.Duration) (ExpirePendingOrdersCommand, error) {
	cmd := ExpirePendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setMaxPendingAge(maxPendingAge); err != nil {
		return ExpirePendingOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

// MaxPendingAge returns how long an order may stay pending.
func (c ExpirePendingOrdersCommand) MaxPendingAge() time.Duration {
	return c.maxPendingAge
}

func (c *ExpirePendingOrdersCommand) setMaxPendingAge(maxPendingAge time.Duration) error {
	if maxPendingAge <= 0 {
		return errs.NewValueIsInvalidError("maxPendingAge")
	}

	c.maxPendingAge = maxPendingAge
	return nil
}
