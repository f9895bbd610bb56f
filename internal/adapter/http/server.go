package http

import (
	"context"
	"net/http"
	"time"

	"github.com/driveline/driveline/internal/ports"
	"github.com/driveline/driveline/internal/service/logger"
	"github.com/driveline/driveline/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Server represents the HTTP server
type Server struct {
	addr   string
	log    logger.Logger
	server *http.Server
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer creates a new HTTP server
func NewServer(
	config ServerConfig,
	log logger.Logger,
	inventoryUseCase *usecase.InventoryUseCase,
	profitabilityUseCase *usecase.ProfitabilityUseCase,
	blogUseCase *usecase.BlogUseCase,
	authUseCase *usecase.AuthUseCase,
	vinDecoder ports.VinDecoder,
	tokens ports.TokenService,
) *Server {
	auth := NewAuthMiddleware(tokens)

	inventoryHandler := NewInventoryHandler(inventoryUseCase)
	profitabilityHandler := NewProfitabilityHandler(profitabilityUseCase)
	blogHandler := NewBlogHandler(blogUseCase)
	authHandler := NewAuthHandler(authUseCase)
	vinHandler := NewVinHandler(vinDecoder)

	router := mux.NewRouter()

	inventoryHandler.RegisterRoutes(router, auth)
	profitabilityHandler.RegisterRoutes(router, auth)
	blogHandler.RegisterRoutes(router, auth)
	authHandler.RegisterRoutes(router, auth)
	vinHandler.RegisterRoutes(router, auth)

	router.Use(correlationMiddleware)
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware)
	router.Use(recoveryMiddleware(log))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return &Server{
		addr: ":" + config.Port,
		log:  log,
		server: &http.Server{
			Addr:         ":" + config.Port,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info(context.Background(), "starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info(ctx, "shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}

// Middleware

const correlationIDHeader = "X-Correlation-ID"

// correlationMiddleware ensures every request/response carries a correlation ID
func correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(correlationIDHeader)
		if cid == "" {
			cid = uuid.NewString()
		}
		w.Header().Set(correlationIDHeader, cid)
		ctx := logger.WithCorrelationID(r.Context(), cid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info(r.Context(), "request handled", map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"remote":   r.RemoteAddr,
				"duration": time.Since(start).String(),
			})
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func recoveryMiddleware(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error(r.Context(), "panic recovered", nil, map[string]interface{}{
						"panic": err,
						"path":  r.URL.Path,
					})
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
