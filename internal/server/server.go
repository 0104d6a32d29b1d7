// Package server exposes the view model to the external rendering layer
// over a read-only JSON API plus a websocket update channel. The server
// never mutates the store; all writes flow through the pipeline and the
// refresh scheduler.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"goldboard/internal/viewmodel"
)

// Server serves read accessors over the store.
type Server struct {
	store    *viewmodel.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// New creates a Server over store.
func New(store *viewmodel.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			// The API is unauthenticated and CORS-open to the dashboard
			// origins; the websocket mirrors that.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/viewmodel", s.handleViewModel)
		api.GET("/price", s.handlePrice)
		api.GET("/predictions", s.handlePredictions)
		api.GET("/metrics", s.handleMetrics)
		api.GET("/insights", s.handleInsights)
		api.GET("/provenance", s.handleProvenance)
		api.GET("/performance", s.handlePerformance)
	}

	r.GET("/ws", s.handleWS)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "loaded": s.store.Loaded()})
}

// notLoaded answers 503 until the initial load or synthesis completes.
func (s *Server) notLoaded(c *gin.Context) bool {
	if s.store.Loaded() {
		return false
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "view model not loaded yet"})
	return true
}

func (s *Server) handleViewModel(c *gin.Context) {
	vm, ok := s.store.ViewModel()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "view model not loaded yet"})
		return
	}
	c.JSON(http.StatusOK, toViewModelDTO(vm))
}

func (s *Server) handlePrice(c *gin.Context) {
	if s.notLoaded(c) {
		return
	}
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"current_price": snap.CurrentPrice,
		"last_date":     snap.LastDate(),
	})
}

func (s *Server) handlePredictions(c *gin.Context) {
	if s.notLoaded(c) {
		return
	}
	c.JSON(http.StatusOK, toPredictionsDTO(s.store.Predictions()))
}

func (s *Server) handleMetrics(c *gin.Context) {
	if s.notLoaded(c) {
		return
	}
	c.JSON(http.StatusOK, toMetricsDTO(s.store.Metrics()))
}

func (s *Server) handleInsights(c *gin.Context) {
	if s.notLoaded(c) {
		return
	}
	c.JSON(http.StatusOK, toInsightsDTO(s.store.Insights()))
}

func (s *Server) handleProvenance(c *gin.Context) {
	records := s.store.Provenance()
	out := make([]provenanceDTO, len(records))
	for i, rec := range records {
		out[i] = provenanceDTO{
			ID:        rec.ID,
			Source:    rec.Source.String(),
			URL:       rec.URL,
			Outcome:   rec.Outcome,
			Detail:    rec.Detail,
			ElapsedMs: rec.ElapsedMs,
		}
	}
	c.JSON(http.StatusOK, gin.H{"attempts": out})
}

func (s *Server) handlePerformance(c *gin.Context) {
	if s.notLoaded(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": toPerformanceDTO(s.store.PerformanceEntries())})
}

// wsUpdate is the message pushed to dashboard clients after each applied
// store update.
type wsUpdate struct {
	Event       string  `json:"event"`
	RefreshTick int     `json:"refresh_tick"`
	Price       float64 `json:"current_price"`
}

// handleWS upgrades the connection and forwards store update signals until
// the client goes away.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Printf("[server] ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := s.store.Subscribe()
	defer cancel()

	// Reader goroutine detects client close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-updates:
			vm, ok := s.store.ViewModel()
			if !ok {
				continue
			}
			msg := wsUpdate{Event: "updated", RefreshTick: vm.RefreshTick, Price: vm.Snapshot.CurrentPrice}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
