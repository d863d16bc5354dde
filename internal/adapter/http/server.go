package http

import (
	"net/http"

	"github.com/bnema/batchenc/internal/adapter/http/middleware"
	"github.com/bnema/batchenc/internal/service"
)

type Server struct {
	mux           *http.ServeMux
	handlers      *Handlers
	sseHandler    *SSEHandler
	authSvc       AuthService
	secureCookies bool
}

// NewServer wires the dashboard, the batch API and the event stream.
// defaults supplies hardware, format and concurrency for requests that omit
// them.
func NewServer(authSvc AuthService, batchSvc BatchService, eventBus *service.EventBus, defaults service.StartRequest, secureCookies bool) *Server {
	s := &Server{
		mux:           http.NewServeMux(),
		handlers:      NewHandlers(batchSvc, defaults),
		sseHandler:    NewSSEHandler(eventBus, batchSvc),
		authSvc:       authSvc,
		secureCookies: secureCookies,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	loginHandler := LoginHandler(s.authSvc, s.secureCookies)
	s.mux.HandleFunc("GET /login", loginHandler)
	s.mux.HandleFunc("POST /login", loginHandler)
	s.mux.HandleFunc("POST /logout", AuthMiddleware(s.authSvc, LogoutHandler(s.secureCookies)))

	s.mux.HandleFunc("GET /{$}", AuthMiddleware(s.authSvc, s.handlers.Dashboard()))
	s.mux.HandleFunc("GET /history", AuthMiddleware(s.authSvc, s.handlers.HistoryPage()))
	s.mux.HandleFunc("GET /events", AuthMiddleware(s.authSvc, s.sseHandler.Events()))

	s.mux.HandleFunc("POST /batches", AuthMiddleware(s.authSvc, s.handlers.StartBatch()))
	s.mux.HandleFunc("GET /batches", AuthMiddleware(s.authSvc, s.handlers.ListBatches()))
	s.mux.HandleFunc("GET /batches/current", AuthMiddleware(s.authSvc, s.handlers.CurrentBatch()))
	s.mux.HandleFunc("DELETE /batches/current", AuthMiddleware(s.authSvc, s.handlers.CancelBatch()))
	s.mux.HandleFunc("POST /batches/current/cancel", AuthMiddleware(s.authSvc, s.handlers.CancelBatch()))
	s.mux.HandleFunc("POST /batches/current/reset", AuthMiddleware(s.authSvc, s.handlers.ResetBatch()))
	s.mux.HandleFunc("GET /batches/{id}", AuthMiddleware(s.authSvc, s.handlers.GetBatch()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SecurityHeaders(s.mux).ServeHTTP(w, r)
}
