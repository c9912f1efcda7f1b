package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bookshelf/internal/metrics"
	chiTransport "github.com/kailas-cloud/bookshelf/internal/transport/chi"
)

// newRouter wires the middleware chain in front of the API routes.
func newRouter(server *chiTransport.Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())

	r.NotFound(chiTransport.NotFound)
	r.MethodNotAllowed(chiTransport.MethodNotAllowed)
	server.Routes(r)
	return r
}
