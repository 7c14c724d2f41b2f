package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colisdirect/delivery-system/internal/core/domain"
)

// ctxActor rebuilds the acting user from the claims the Auth middleware put
// on the context, with a fast-fail check before any service call:
//   - role must be non-empty and recognised (presence proves the middleware ran).
//   - courier, client, and recipient roles require their linkage id; without
//     it the JWT is structurally valid but operationally unusable, reject 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	role, _ := c.Get("role").(string)
	if !domain.Role(role).Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	actor := domain.Actor{
		Username: strClaim(c, "username"),
		Role:     domain.Role(role),
	}
	actor.CourierID = strClaim(c, "courier_id")
	actor.ClientID = strClaim(c, "client_id")
	actor.RecipientID = strClaim(c, "recipient_id")

	switch actor.Role {
	case domain.RoleCourier:
		if actor.CourierID == "" {
			return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing courier identity")
		}
	case domain.RoleClient:
		if actor.ClientID == "" {
			return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
		}
	case domain.RoleRecipient:
		if actor.RecipientID == "" {
			return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing recipient identity")
		}
	}

	return actor, nil
}

func strClaim(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}
