package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/booking"
	"github.com/iliyamo/cinema-box-office/internal/catalog"
	"github.com/iliyamo/cinema-box-office/internal/recommend"
)

// PublicHandler exposes the read-only browse surface: the film
// catalog, showing listings, per-showing seat availability and
// recommendations. No authentication is applied; responses contain
// only data a guest may see.
type PublicHandler struct {
	Coordinator *booking.Coordinator
}

// NewPublicHandler constructs a PublicHandler around the coordinator.
func NewPublicHandler(coord *booking.Coordinator) *PublicHandler {
	if coord == nil {
		panic("nil coordinator passed to NewPublicHandler")
	}
	return &PublicHandler{Coordinator: coord}
}

// ListFilms handles GET /v1/films and returns the whole catalog in
// stable order.
func (h *PublicHandler) ListFilms(c echo.Context) error {
	films := h.Coordinator.Catalog().List()
	out := make([]echo.Map, 0, len(films))
	for _, f := range films {
		out = append(out, filmResponse(f))
	}
	return c.JSON(http.StatusOK, echo.Map{"films": out})
}

// ListShowings handles GET /v1/showings.
func (h *PublicHandler) ListShowings(c echo.Context) error {
	showings := h.Coordinator.Showings()
	out := make([]echo.Map, 0, len(showings))
	for _, s := range showings {
		out = append(out, showingResponse(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"showings": out})
}

// GetShowingSeats handles GET /v1/showings/:id/seats. Every seat of
// the room is returned with its current availability. Seats held by an
// in-flight purchase show as occupied; there is no third state.
func (h *PublicHandler) GetShowingSeats(c echo.Context) error {
	states, err := h.Coordinator.SeatStates(c.Param("id"))
	if err != nil {
		var nf *booking.NotFoundError
		if errors.As(err, &nf) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read seats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": states})
}

// Recommend handles GET /v1/recommendations. Query parameters:
//
//	strategy - "popularity" (default) or "genre"
//	genre    - required when strategy=genre
//	limit    - maximum films returned, default 3
//
// Returning a film counts as showing it, so its view counter moves.
func (h *PublicHandler) Recommend(c echo.Context) error {
	limit := 3
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	var strat recommend.Strategy
	switch c.QueryParam("strategy") {
	case "", "popularity":
		strat = recommend.Popularity{}
	case "genre":
		genre, err := catalog.ParseGenre(c.QueryParam("genre"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		strat = recommend.ByGenre{Genre: genre}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown strategy"})
	}

	films := h.Coordinator.RecommendWith(strat, limit)
	out := make([]echo.Map, 0, len(films))
	for _, f := range films {
		out = append(out, filmResponse(f))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"strategy": strat.Name(),
		"films":    out,
	})
}
