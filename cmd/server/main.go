// Package main provides a local HTTP server for development and testing.
// It exposes the cost calculation engine plus the preference and history
// stores as a small JSON API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/cors"

	"car-cost-engine/internal/config"
	"car-cost-engine/internal/engine"
	"car-cost-engine/internal/models"
	"car-cost-engine/internal/services/cache"
	"car-cost-engine/internal/services/calculator"
	"car-cost-engine/internal/services/database"
	s3service "car-cost-engine/internal/services/s3"
	"car-cost-engine/internal/services/ses"
	"car-cost-engine/internal/utils"
)

// Server holds all dependencies
type Server struct {
	db       *database.DB
	prefRepo *database.PreferenceRepository
	calcRepo *database.CalculationRepository
	calc     *calculator.Service
	s3       *s3service.Service
	ses      *ses.Service
	config   *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CalculateRequest is the calculation endpoint body. Exactly one of Input or
// Listing is expected; a listing is overlaid on the stored preference.
type CalculateRequest struct {
	ProfileKey string                  `json:"profile_key"`
	Input      *models.CalculatorInput `json:"input,omitempty"`
	Listing    *models.VehicleListing  `json:"listing,omitempty"`
}

// EmailReportRequest asks for a cost report email.
type EmailReportRequest struct {
	To         string                 `json:"to"`
	ProfileKey string                 `json:"profile_key"`
	Input      models.CalculatorInput `json:"input"`
}

func main() {
	// Initialize logger first
	if err := utils.InitLogger(getEnvOrDefault("LOG_LEVEL", "info")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config from environment: %v", err)
		cfg = &config.Config{}
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run without preferences and history")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.Migrate(ctx, cfg.DatabaseURL()); err != nil {
			log.Printf("Warning: Could not run migrations: %v", err)
		}
		cancel()
	}

	// Result cache: Redis when configured, in-process otherwise
	var resultCache cache.ResultCache
	if cfg.RedisAddr != "" {
		resultCache = cache.NewRedisCache(cfg.RedisAddr, time.Duration(cfg.CacheTTLMinutes)*time.Minute)
	} else {
		resultCache = cache.NewMemoryCache()
	}

	server := &Server{
		db:     db,
		calc:   calculator.NewService(db, engine.New(nil), resultCache),
		config: cfg,
	}

	if db != nil {
		server.prefRepo = database.NewPreferenceRepository(db)
		server.calcRepo = database.NewCalculationRepository(db)
	}

	// S3 and SES are optional; exports and report mail just stay disabled
	if s3svc, err := s3service.NewService(context.Background()); err == nil {
		server.s3 = s3svc
	} else {
		log.Printf("Warning: Could not initialize S3 service: %v", err)
	}
	if sesSvc, err := ses.NewService(context.Background()); err == nil {
		server.ses = sesSvc
	} else {
		log.Printf("Warning: Could not initialize SES service: %v", err)
	}

	// Setup routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	// Run a calculation
	mux.HandleFunc("/api/calculate", server.calculateHandler)

	// Preference CRUD
	mux.HandleFunc("/api/preferences", server.preferencesHandler)

	// Calculation history
	mux.HandleFunc("/api/history", server.historyHandler)
	mux.HandleFunc("/api/history/export", server.exportHandler)

	// Email a cost report
	mux.HandleFunc("/api/report/email", server.emailReportHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}
	addr := fmt.Sprintf("0.0.0.0:%d", port)

	log.Printf("Car Cost Engine API Server")
	log.Printf("Listening on http://localhost:%d", port)
	log.Printf("Health: http://localhost:%d/health", port)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":    "healthy",
		"service":   "car-cost-engine",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := s.db.HealthCheck(ctx); err != nil {
			status["database"] = "unreachable"
		} else {
			status["database"] = "connected"
		}
	}

	writeJSON(w, http.StatusOK, status)
}

func (s *Server) calculateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "method not allowed"})
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	var breakdown *models.CostBreakdown
	var err error
	switch {
	case req.Input != nil:
		breakdown, err = s.calc.Calculate(r.Context(), req.ProfileKey, *req.Input)
	case req.Listing != nil:
		breakdown, err = s.calc.CalculateFromListing(r.Context(), req.ProfileKey, req.Listing)
	default:
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "either input or listing is required"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: breakdown})
}

func (s *Server) preferencesHandler(w http.ResponseWriter, r *http.Request) {
	if s.prefRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "preference store not available"})
		return
	}

	key := r.URL.Query().Get("key")

	switch r.Method {
	case http.MethodGet:
		if key == "" {
			prefs, err := s.prefRepo.List(r.Context())
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, Response{Success: true, Data: prefs})
			return
		}

		pref, err := s.prefRepo.Get(r.Context(), key)
		if err == models.ErrPreferenceNotFound {
			writeJSON(w, http.StatusNotFound, Response{Success: false, Error: "preference not found"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Data: pref})

	case http.MethodPost, http.MethodPut:
		var input models.CalculatorInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
			return
		}

		pref := &models.Preference{ProfileKey: key, Input: input}
		if err := s.prefRepo.Save(r.Context(), pref); err != nil {
			status := http.StatusInternalServerError
			if err == models.ErrEmptyProfileKey {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, Response{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Message: "preference saved"})

	case http.MethodDelete:
		err := s.prefRepo.Delete(r.Context(), key)
		if err == models.ErrPreferenceNotFound {
			writeJSON(w, http.StatusNotFound, Response{Success: false, Error: "preference not found"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Message: "preference deleted"})

	default:
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "method not allowed"})
	}
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "method not allowed"})
		return
	}

	profileKey := r.URL.Query().Get("profile_key")
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	records, err := s.calc.History(r.Context(), profileKey, limit)
	if err != nil {
		status := http.StatusInternalServerError
		if err == models.ErrEmptyProfileKey {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "method not allowed"})
		return
	}
	if s.s3 == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "export not available"})
		return
	}

	profileKey := r.URL.Query().Get("profile_key")
	records, err := s.calc.History(r.Context(), profileKey, 0)
	if err != nil {
		status := http.StatusInternalServerError
		if err == models.ErrEmptyProfileKey {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	csvData, err := utils.BuildHistoryCSV(records)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	key := s3service.ReportKey(profileKey)
	if err := s.s3.UploadReport(r.Context(), key, csvData, "text/csv"); err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	url, err := s.s3.GeneratePresignedDownloadURL(r.Context(), key, 60)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: url})
}

func (s *Server) emailReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "method not allowed"})
		return
	}
	if s.ses == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "report mail not available"})
		return
	}

	var req EmailReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}
	if req.To == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "recipient address is required"})
		return
	}

	breakdown, err := s.calc.Calculate(r.Context(), req.ProfileKey, req.Input)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	result, err := s.ses.SendCostReport(r.Context(), ses.CostReportParams{
		To:         req.To,
		ProfileKey: req.ProfileKey,
		Breakdown:  *breakdown,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "report sent", Data: result})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
