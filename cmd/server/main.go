package main // Entry point package

import (
	"log"  // Logging library
	"time" // Showing schedule for the demo seed

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/cinema-box-office/internal/booking"
	"github.com/iliyamo/cinema-box-office/internal/catalog"
	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/handler"
	"github.com/iliyamo/cinema-box-office/internal/payment"
	"github.com/iliyamo/cinema-box-office/internal/queue"
	"github.com/iliyamo/cinema-box-office/internal/recommend"
	"github.com/iliyamo/cinema-box-office/internal/router"
	"github.com/iliyamo/cinema-box-office/internal/showing"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	cat := catalog.NewCatalog()
	gateway := payment.NewSimulated(cfg.PaymentSuccessRate, cfg.PaymentLatency)
	coord := booking.NewCoordinator(cat, gateway, recommend.Popularity{})

	if cfg.SeedDemo {
		seedDemo(coord)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; middlewares degrade
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	// Background consumer writing confirmed reservations to logs/booking.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e,
		handler.NewAdminHandler(coord),
		handler.NewPublicHandler(coord),
		handler.NewPurchaseHandler(coord),
		rdb,
		config.LoadRateLimitConfig(),
		config.LoadCacheConfig(),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedDemo fills the registries with a small catalog and a handful of
// showings so the API is usable right after startup in dev.
func seedDemo(coord *booking.Coordinator) {
	films := []struct {
		title  string
		genre  catalog.Genre
		price  float64
		minAge int
	}{
		{"Escape Velocity", catalog.GenreSciFi, 32.0, 12},
		{"Laugh Track", catalog.GenreComedy, 28.0, 0},
		{"After Hours", catalog.GenreDrama, 30.0, 16},
	}
	for _, f := range films {
		film, err := catalog.NewFilm(f.title, f.genre, f.price, f.minAge)
		if err != nil {
			log.Printf("seed: skipping film %q: %v", f.title, err)
			continue
		}
		if err := coord.Catalog().Add(film); err != nil {
			log.Printf("seed: add film %q: %v", f.title, err)
		}
	}
	for _, s := range showing.Generate(coord.Catalog().List(), 3, time.Now()) {
		if err := coord.AddShowing(s); err != nil {
			log.Printf("seed: add showing %s: %v", s.ID, err)
		}
	}
}
