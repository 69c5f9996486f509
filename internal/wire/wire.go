package wire

import (
	"context"
	"net/http"
	"time"

	"shareit/internal/adaptor"
	"shareit/internal/data/repository"
	"shareit/internal/usecase"
	"shareit/pkg/database"
	"shareit/pkg/middleware"
	"shareit/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring builds repositories, services, handlers and the router.
func Wiring(db database.PgxIface, logger *zap.Logger) *App {
	repo := repository.NewRepository(db, logger)
	service := usecase.NewService(repo, time.Now, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, db, logger),
	}
}

func setupRouter(handler *adaptor.Handler, db database.PgxIface, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireUser(r, handler.User)
	wireItem(r, handler.Item, logger)
	wireBooking(r, handler.Booking, logger)

	r.Get("/health", health(db))

	return r
}

func health(db database.PgxIface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			utils.ResponseUnavailable(w, "database unreachable")
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	}
}
