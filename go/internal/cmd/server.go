package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/scoreboard/go/internal/respond"
)

type endpoint struct {
	Href    string   `json:"href"`
	Methods []string `json:"methods"`
}

var index = []endpoint{
	{Href: "/teams", Methods: []string{http.MethodGet, http.MethodPost}},
	{Href: "/teams/:slug", Methods: []string{http.MethodGet, http.MethodPatch, http.MethodDelete}},
	{Href: "/games", Methods: []string{http.MethodGet, http.MethodPost}},
	{Href: "/games/:id", Methods: []string{http.MethodGet, http.MethodPatch, http.MethodDelete}},
}

func setupServer(port string, handler http.Handler) *http.Server {
	// Setup HTTP/2 server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// newRouter builds the full handler stack. It does not listen, so tests can
// drive it with httptest.
func newRouter(services *Services, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: allowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	// Register services
	services.Teams.Register(mux)
	services.Games.Register(mux)

	setupIndex(mux)
	setupHealthCheck(mux)
	mux.Handle("GET /health/ready", services.Health)

	return withRequestLogger(withRecover(c.Handler(mux)))
}

func setupIndex(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, index)
	})
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
