package server

import (
	"log"
	"net/http"
	"time"

	"github.com/Martinez-Cris/mueblefact-pro/internal/handlers"
	"github.com/Martinez-Cris/mueblefact-pro/internal/httpx"
	"github.com/Martinez-Cris/mueblefact-pro/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(s *store.Store) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog endpoints
	ph := handlers.NewProductHandler(s)
	mux.Handle("/products", listCreate(ph.List, ph.Create))
	mux.HandleFunc("/products/delete", ph.Delete)

	// Set endpoints
	sh := handlers.NewSetHandler(s)
	mux.Handle("/sets", listCreate(sh.List, sh.Create))
	mux.HandleFunc("/sets/delete", sh.Delete)
	mux.HandleFunc("/sets/instantiate", sh.Instantiate)

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(s)
	mux.Handle("/invoices", listCreate(ih.List, ih.Create))
	mux.HandleFunc("/invoices/delete", ih.Delete)
	mux.HandleFunc("/invoices/csv", ih.CSV)
	mux.HandleFunc("/invoices/consolidated.csv", ih.ConsolidatedCSV)
	mux.HandleFunc("/invoices/pdf", ih.PDF)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("MuebleFact Pro API")); werr != nil {
			_ = werr
		}
	})
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

// listCreate routes GET to list and POST to create, rejecting the rest.
func listCreate(list, create http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
}

// Simple middleware logging & recovery kept private to this package to avoid duplication.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
