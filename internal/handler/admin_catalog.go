package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/booking"
	"github.com/iliyamo/cinema-box-office/internal/catalog"
	"github.com/iliyamo/cinema-box-office/internal/showing"
)

// AdminHandler exposes the registry mutators: adding films to the
// catalog and registering showings. No validation is performed beyond
// id uniqueness and well-formed input; the core never deletes either.
type AdminHandler struct {
	Coordinator *booking.Coordinator
}

// NewAdminHandler constructs an AdminHandler around the coordinator.
func NewAdminHandler(coord *booking.Coordinator) *AdminHandler {
	if coord == nil {
		panic("nil coordinator passed to NewAdminHandler")
	}
	return &AdminHandler{Coordinator: coord}
}

// CreateFilm handles POST /v1/films. The body must contain a title,
// a known genre, a non-negative base price and an optional minimum
// age. Overlong titles are stored truncated, matching the catalog's
// contract. Returns 201 with the stored film.
func (h *AdminHandler) CreateFilm(c echo.Context) error {
	var body struct {
		Title     string  `json:"title"`
		Genre     string  `json:"genre"`
		BasePrice float64 `json:"base_price"`
		MinAge    int     `json:"min_age"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	genre, err := catalog.ParseGenre(body.Genre)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	film, err := catalog.NewFilm(body.Title, genre, body.BasePrice, body.MinAge)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Coordinator.Catalog().Add(film); err != nil {
		if errors.Is(err, catalog.ErrDuplicateFilm) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "film already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add film"})
	}
	return c.JSON(http.StatusCreated, filmResponse(film))
}

// CreateShowing handles POST /v1/showings. The body names a registered
// film, a start time, a room label and the seat map. Seats need a
// positive row and number; the premium flag is part of the seat map.
// Returns 201 with the stored showing.
func (h *AdminHandler) CreateShowing(c echo.Context) error {
	var body struct {
		FilmID string        `json:"film_id"`
		Start  time.Time     `json:"start"`
		Room   string        `json:"room"`
		Seats  []seatRequest `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.FilmID == "" || body.Room == "" || body.Start.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "film_id, start and room are required"})
	}
	if len(body.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
	}
	seats := make([]showing.Seat, 0, len(body.Seats))
	for _, s := range body.Seats {
		if s.Row < 1 || s.Number < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat row and number must be positive"})
		}
		seats = append(seats, showing.Seat{Row: s.Row, Number: s.Number, Premium: s.Premium})
	}
	film, err := h.Coordinator.Catalog().Get(body.FilmID)
	if err != nil {
		if errors.Is(err, catalog.ErrFilmNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve film"})
	}
	s := showing.New(film, body.Start, body.Room, seats)
	if err := h.Coordinator.AddShowing(s); err != nil {
		if errors.Is(err, booking.ErrDuplicateShowing) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "showing already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add showing"})
	}
	return c.JSON(http.StatusCreated, showingResponse(s))
}

// seatRequest is the wire form of one seat in admin and purchase bodies.
type seatRequest struct {
	Row     int  `json:"row"`
	Number  int  `json:"number"`
	Premium bool `json:"premium"`
}

func filmResponse(f *catalog.Film) echo.Map {
	return echo.Map{
		"id":         f.ID,
		"title":      f.Title,
		"genre":      f.Genre,
		"base_price": f.BasePrice,
		"min_age":    f.MinAge,
		"views":      f.Views(),
		"sales":      f.Sales(),
	}
}

func showingResponse(s *showing.Showing) echo.Map {
	return echo.Map{
		"id":      s.ID,
		"film_id": s.Film.ID,
		"title":   s.Film.Title,
		"start":   s.Start.Format(time.RFC3339),
		"room":    s.Room,
		"seats":   s.Seats(),
	}
}
