package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"mood-tagger/backup"
	"mood-tagger/config"
	"mood-tagger/db"
	"mood-tagger/mood"
	"mood-tagger/wav"
)

type apiError struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Message: message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(rec, r)
		log.Printf("[http] %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newTagsHandler(dbClient db.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		file := strings.TrimSpace(r.URL.Query().Get("file"))
		if file == "" {
			writeJSONError(w, http.StatusBadRequest, "file query parameter is required")
			return
		}

		tags, found, err := dbClient.GetMoodTags(r.Context(), file)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to retrieve tags")
			return
		}
		if !found {
			writeJSONError(w, http.StatusNotFound, "no tags stored for this file")
			return
		}

		writeJSON(w, http.StatusOK, tags)
	}
}

func newStatusHandler(dbClient db.Client, cfg *config.Config) http.HandlerFunc {
	type statusResponse struct {
		TaggedFiles     int    `json:"taggedFiles"`
		DBType          string `json:"dbType"`
		Model           string `json:"model"`
		FFmpegAvailable bool   `json:"ffmpegAvailable"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		count, err := dbClient.TotalTagged(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to query tag store")
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{
			TaggedFiles:     count,
			DBType:          cfg.Storage.DBType,
			Model:           cfg.Mood.Model,
			FFmpegAvailable: wav.CheckFFmpegAvailable() == nil,
		})
	}
}

func newAnalyzeHandler(cfg *config.Config, moodClient *mood.Client, dbClient db.Client) http.HandlerFunc {
	type analyzeRequest struct {
		Path string `json:"path"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Path) == "" {
			writeJSONError(w, http.StatusBadRequest, "path is required")
			return
		}

		backupStore, err := backup.NewStore(cfg.Storage.BackupDir)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to open backup store")
			return
		}

		result := processFile(r.Context(), req.Path, cfg, moodClient, dbClient, backupStore, false)
		if result.Err != "" {
			writeJSONError(w, http.StatusUnprocessableEntity, result.Err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func serve(port string, cfg *config.Config) {
	ctx := context.Background()

	moodClient, err := mood.NewClient(ctx, cfg.Mood.Model)
	if err != nil {
		log.Fatalf("failed to create mood client: %v", err)
	}

	dbClient, err := db.NewDBClient(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to create DB client: %v", err)
	}
	defer dbClient.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", newTagsHandler(dbClient))
	mux.HandleFunc("/api/status", newStatusHandler(dbClient, cfg))
	mux.HandleFunc("/api/analyze", newAnalyzeHandler(cfg, moodClient, dbClient))

	handler := requestLogger(corsMiddleware(mux))

	log.Printf("starting server on port %s\n", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
