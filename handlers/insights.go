package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/picktrack/feed"
	"github.com/padraicbc/picktrack/matching"
)

// h2hResponse marks unresolved matchups explicitly instead of erroring;
// the UI drops the insight affordance when resolved is false.
type h2hResponse struct {
	Resolved bool               `json:"resolved"`
	A        *matching.Identity `json:"a,omitempty"`
	B        *matching.Identity `json:"b,omitempty"`
	Record   *feed.H2HRecord    `json:"record,omitempty"`
}

// H2H resolves two free-text player names and returns their
// head-to-head record. Lookups are cached for the configured TTL so a
// busy board does not hammer the stats provider.
func (h *Handler) H2H(c echo.Context) error {
	a, b := c.QueryParam("a"), c.QueryParam("b")
	if a == "" || b == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing a or b param")
	}
	tour := c.QueryParam("tour")

	idA, errA := h.resolver.ResolvePlayer(a, tour)
	idB, errB := h.resolver.ResolvePlayer(b, tour)
	if errors.Is(errA, matching.ErrUnresolved) || errors.Is(errB, matching.ErrUnresolved) {
		return c.JSON(http.StatusOK, h2hResponse{Resolved: false})
	}
	if errA != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errA.Error())
	}
	if errB != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errB.Error())
	}

	// Order the cache key so A-vs-B and B-vs-A share an entry.
	first, second := idA, idB
	if second.Key < first.Key {
		first, second = second, first
	}
	cacheKey := "h2h:" + first.Key + ":" + second.Key

	if h.h2h != nil {
		if v, ok := h.h2h.Get(cacheKey); ok {
			if rec, ok := v.(feed.H2HRecord); ok {
				return c.JSON(http.StatusOK, h2hResponse{Resolved: true, A: &idA, B: &idB, Record: &rec})
			}
		}
	}

	rec, err := h.feed.H2H(c.Request().Context(), first.Key, second.Key)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	if h.h2h != nil {
		h.h2h.Set(cacheKey, rec)
	}

	return c.JSON(http.StatusOK, h2hResponse{Resolved: true, A: &idA, B: &idB, Record: &rec})
}
