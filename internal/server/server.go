package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/trend-goat/trend-goat/internal/store"
)

type Server struct {
	store     *store.SQLiteStore
	port      int
	token     string
	tokenFile string
	router    *http.ServeMux
	hub       *Hub
	startTime time.Time
}

func New(s *store.SQLiteStore, port int, tokenFile string) *Server {
	srv := &Server{
		store:     s,
		port:      port,
		token:     generateToken(),
		tokenFile: tokenFile,
		router:    http.NewServeMux(),
		hub:       NewHub(),
		startTime: time.Now(),
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	// Public endpoints
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/api/chart", s.handleChart)
	s.router.HandleFunc("/api/record", s.handleRecord)
	s.router.HandleFunc("/api/experiments", s.handleExperiments)
	s.router.HandleFunc("/live", s.handleLive)

	// Dashboard (protected)
	s.router.Handle("/dashboard", s.authMiddleware(http.HandlerFunc(s.handleDashboard)))
}

func (s *Server) Start() error {
	return s.StartWithOptions(true)
}

// StartQuiet starts the server without printing startup messages
func (s *Server) StartQuiet() error {
	return s.StartWithOptions(false)
}

func (s *Server) StartWithOptions(printMessages bool) error {
	// Write token to file so the CLI can print the dashboard URL later
	if s.tokenFile != "" {
		if err := os.WriteFile(s.tokenFile, []byte(s.token), 0600); err != nil {
			fmt.Printf("Warning: failed to write token file: %v\n", err)
		}
	}

	addr := fmt.Sprintf(":%d", s.port)

	if printMessages {
		fmt.Println()
		fmt.Printf("trend-goat running on http://localhost:%d\n", s.port)
		fmt.Printf("Dashboard: http://localhost:%d/dashboard?token=%s\n", s.port, s.token)
		fmt.Println()
		fmt.Println("Press Ctrl+C to stop")
	}

	return http.ListenAndServe(addr, s.router)
}

func (s *Server) Token() string {
	return s.token
}

func (s *Server) Store() *store.SQLiteStore {
	return s.store
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func generateToken() string {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to a simple token if crypto/rand fails
		return "a1b2c3d4"
	}
	return hex.EncodeToString(bytes)
}
