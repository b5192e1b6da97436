package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xingyaoww/langfuse/pkg/sessionquery"
	"github.com/xingyaoww/langfuse/pkg/store"
)

// TracesResponse is the payload returned by the session traces endpoint.
type TracesResponse struct {
	// Data holds the traces, newest first.
	Data []*store.Trace `json:"data"`

	// Meta describes the query as it was actually executed, including any
	// corrections the optimizer applied.
	Meta TracesMeta `json:"meta"`
}

// TracesMeta describes the executed query.
type TracesMeta struct {
	Count         int        `json:"count"`
	FromTimestamp time.Time  `json:"fromTimestamp"`
	ToTimestamp   *time.Time `json:"toTimestamp,omitempty"`
	Limit         int        `json:"limit"`
	Fields        []string   `json:"fields"`
	Optimizations []string   `json:"optimizations"`
}

// AdviceResponse is the payload returned by the advice endpoint.
type AdviceResponse struct {
	Validation ValidationPayload `json:"validation"`
	Estimate   EstimatePayload   `json:"estimate"`
}

// ValidationPayload mirrors sessionquery.ValidationResult in wire form.
type ValidationPayload struct {
	IsOptimal       bool     `json:"isOptimal"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

// EstimatePayload mirrors sessionquery.PerformanceEstimate in wire form.
type EstimatePayload struct {
	Score             int      `json:"score"`
	Factors           []string `json:"factors"`
	EstimatedDuration string   `json:"estimatedDuration"`
}

func newValidationPayload(v sessionquery.ValidationResult) ValidationPayload {
	return ValidationPayload{
		IsOptimal:       v.IsOptimal,
		Warnings:        emptyIfNil(v.Warnings),
		Recommendations: emptyIfNil(v.Recommendations),
	}
}

func newEstimatePayload(e sessionquery.PerformanceEstimate) EstimatePayload {
	return EstimatePayload{
		Score:             e.Score,
		Factors:           emptyIfNil(e.Factors),
		EstimatedDuration: string(e.EstimatedDuration),
	}
}

// emptyIfNil keeps empty lists as [] rather than null on the wire.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// errorResponse is the wire form of every handler error.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
