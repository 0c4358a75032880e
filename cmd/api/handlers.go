package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"tradejournal/internal/app"
	"tradejournal/internal/domain/journal"
)

const maxBodyBytes = 1 << 20

func newMux(svc *app.JournalService, log *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/trades", makeTradesHandler(svc, log))
	mux.HandleFunc("/calendar", makeCalendarHandler(svc))
	mux.HandleFunc("/summary", makeSummaryHandler(svc))
	mux.HandleFunc("/skipped", makeSkippedHandler(svc))
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func makeTradesHandler(svc *app.JournalService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, svc.Trades())
		case http.MethodPost:
			var in app.SubmitInput
			body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
			if err := json.NewDecoder(body).Decode(&in); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			row, err := svc.Submit(r.Context(), in)
			if err != nil {
				status := statusForError(err)
				if status == http.StatusInternalServerError {
					log.Error("submit trade", zap.Error(err))
					writeError(w, status, fmt.Sprintf("failed to save trade: %v", err))
					return
				}
				writeError(w, status, err.Error())
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(row)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func makeCalendarHandler(svc *app.JournalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		year, month, err := journal.ParseMonth(r.URL.Query().Get("month"), svc.Now())
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be yyyy-MM")
			return
		}
		writeJSON(w, svc.Calendar(year, month))
	}
}

func makeSummaryHandler(svc *app.JournalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, svc.Summary())
	}
}

func makeSkippedHandler(svc *app.JournalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, svc.Skipped())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, journal.ErrInvalidPrices):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
