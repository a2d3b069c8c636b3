package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lingualink/infrastructure"
	"lingualink/internal/auth"
	"lingualink/internal/directory"
	"lingualink/internal/friends"
	"lingualink/internal/profile"
)

type Server struct {
	router     *mux.Router
	httpServer *http.Server
}

func NewServer(
	authHandler *auth.JSONHandler,
	friendsHandler *friends.JSONHandler,
	directoryHandler *directory.JSONHandler,
	profileHandler *profile.JSONHandler,
	rateLimitRPS int,
) *Server {
	router := mux.NewRouter()
	router.Use(Recovery)
	router.Use(Logging)
	router.Use(RateLimit(rateLimitRPS))

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth.SetupJSONAuthRoutes(router, authHandler)
	friends.SetupJSONFriendsRoutes(router, friendsHandler, authHandler.Middleware)
	directory.SetupJSONDirectoryRoutes(router, directoryHandler, authHandler.Middleware)
	profile.SetupJSONProfileRoutes(router, profileHandler, authHandler.Middleware)

	return &Server{router: router}
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	infrastructure.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
