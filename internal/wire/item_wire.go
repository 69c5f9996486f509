package wire

import (
	"shareit/internal/adaptor"
	"shareit/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireItem(r chi.Router, itemHandler *adaptor.ItemHandler, log *zap.Logger) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/{id}", itemHandler.GetItem)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SharerUser(log))

			r.Post("/", itemHandler.CreateItem)
			r.Get("/", itemHandler.ListOwnerItems)
			r.Patch("/{id}", itemHandler.UpdateItem)
		})
	})
}
