package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/fileutil"
	"github.com/alnah/go-shipcard/internal/github"
)

// Error codes not covered by the parser or the fetch layer.
const (
	codeTooLarge = "TOO_LARGE"
	codeInternal = "INTERNAL"
)

type errResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// classify maps err to an HTTP status and wire code.
func classify(err error) (int, string) {
	if code := shipcard.CodeOf(err); code != "" {
		return http.StatusUnprocessableEntity, string(code)
	}
	switch code := github.Code(err); code {
	case github.CodeInvalidURL:
		return http.StatusBadRequest, code
	case github.CodeCardNotFound:
		return http.StatusNotFound, code
	case github.CodePrivateRepo:
		return http.StatusForbidden, code
	case github.CodeRateLimited:
		return http.StatusTooManyRequests, code
	case github.CodeFetchFailed:
		return http.StatusBadGateway, code
	}
	if errors.Is(err, fileutil.ErrInputTooLarge) {
		return http.StatusRequestEntityTooLarge, codeTooLarge
	}
	return http.StatusInternalServerError, codeInternal
}
