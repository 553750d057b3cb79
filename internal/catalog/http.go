package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

type Server struct {
	Catalog *Provider
	Log     *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		c := s.Catalog.Catalog()
		kit.WriteJSON(w, http.StatusOK, map[string]any{"status": "ready", "products": c.Len()})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			kit.WriteJSON(w, http.StatusOK, map[string]string{"message": "pong"})
		})
		r.Get("/products", s.list)
		r.Get("/products/{id}", s.get)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.logger().Debug("get products", zap.String("q", q))

	products, err := s.Catalog.Catalog().Products(r.Context(), q)
	if err != nil {
		s.logger().Error("search products failed", zap.Error(err), zap.String("q", q))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	s.logger().Debug("get product", zap.String("id", raw))

	id, err := strconv.Atoi(raw)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	p, ok := s.Catalog.Catalog().Product(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
