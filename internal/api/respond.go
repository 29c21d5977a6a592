package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"exsolver/internal/util"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"status":  code,
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

// toAPIError maps an error to a stable code and a message safe to show.
func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "EX-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status == http.StatusServiceUnavailable:
		return apiError{Code: "EX-API-5030", Message: "A backing service is not configured or unreachable."}
	case status == http.StatusBadGateway:
		return apiError{Code: "EX-WF-5020", Message: "Could not start the workflow. Check the Temporal service and retry."}
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{Code: "EX-DB-5001", Message: "Database schema is not initialized."}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{Code: "EX-DB-5002", Message: "Database connection is unavailable. Check local services and retry."}
		case errors.Is(err, util.ErrCorpusDirUnreadable):
			return apiError{Code: "EX-CORPUS-5003", Message: "The examples directory cannot be read."}
		default:
			return apiError{Code: "EX-API-5000", Message: "Internal server error. Please retry or check service logs."}
		}
	case status == http.StatusBadRequest:
		code = "EX-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "EX-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusUnsupportedMediaType:
		code = "EX-CORPUS-4015"
		msg = "Only PDF and plain-text examples are accepted."
	case status == http.StatusUnprocessableEntity:
		code = "EX-CORPUS-4022"
		switch {
		case errors.Is(err, util.ErrNoExtractableText):
			msg = "The document holds no extractable text."
		default:
			msg = "The document has no problem statement."
		}
	}

	if status == http.StatusBadRequest && err != nil {
		switch {
		case strings.Contains(raw, "problem_text is required"):
			msg = "The problem statement is required."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(raw, "no file provided"):
			msg = "No file was provided."
		case strings.Contains(raw, "top_n"), strings.Contains(raw, "limit must"):
			msg = err.Error()
		}
	}
	if status == http.StatusNotFound {
		switch {
		case errors.Is(err, util.ErrExampleNotFound):
			msg = "Example not found."
		case errors.Is(err, util.ErrSolutionNotFound):
			msg = "Solution not found."
		}
	}
	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
