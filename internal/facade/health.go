// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package facade

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/cors"
)

// healthResponse is the JSON body /healthz reports: whether the global
// instance is instantiated, and the outcome of the most recent Selftest
// call, if any has run.
type healthResponse struct {
	Instantiated bool   `json:"instantiated"`
	SelftestRan  bool   `json:"selftest_ran"`
	SelftestOK   bool   `json:"selftest_ok"`
	Status       string `json:"status"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	instantiated, ran, ok := Status()

	resp := healthResponse{
		Instantiated: instantiated,
		SelftestRan:  ran,
		SelftestOK:   ok,
	}

	switch {
	case !instantiated:
		resp.Status = "uninstantiated"
	case ran && !ok:
		resp.Status = "degraded"
	default:
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// NewHealthServer builds an *http.Server exposing /healthz on addr,
// wrapped in a permissive CORS policy the way
// izvenyaisya-go-trng-hack/main.go wraps its own generate endpoint: this
// is a status/diagnostic surface, not an authenticated API, so allowing
// any origin to read it is the simplest correct policy.
func NewHealthServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})

	return &http.Server{
		Addr:              addr,
		Handler:           c.Handler(mux),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
