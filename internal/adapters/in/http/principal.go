package http

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Header names carrying the authenticated principal. Authentication itself
// happens upstream (a gateway or session layer); this adapter trusts the
// resolved identity and only parses it.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// actorFromRequest builds the acting principal from the identity headers.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	rawID := ctx.Request().Header.Get(HeaderUserID)
	if rawID == "" {
		return kernel.Actor{}, errs.NewValueIsRequiredError(HeaderUserID + " header")
	}

	rawRole := ctx.Request().Header.Get(HeaderUserRole)
	if rawRole == "" {
		return kernel.Actor{}, errs.NewValueIsRequiredError(HeaderUserRole + " header")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderUserID+" header", err)
	}

	role, err := kernel.RoleFromString(rawRole)
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(id, role)
}

// requireRole rejects principals acting in the wrong role for an endpoint
// that is bound to one party, such as the cart or the driver board.
func requireRole(actor kernel.Actor, role kernel.Role) error {
	if actor.Role() != role {
		return errs.NewNotAuthorizedError(actor.Role().String(), "endpoint requires the "+role.String()+" role")
	}
	return nil
}
