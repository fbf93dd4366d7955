package server

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/fileutil"
	"github.com/alnah/go-shipcard/internal/github"
)

type handler struct {
	loader   CardLoader
	renderer MarkdownRenderer
	pages    PageRenderer
	logger   *slog.Logger
}

// target builds the fetch target from the route and ?ref=.
// Supports encoded slashes in the card path (docs%2Fcard.md).
func target(r *http.Request) *github.Target {
	t := &github.Target{
		Owner: chi.URLParam(r, "owner"),
		Repo:  strings.TrimSuffix(chi.URLParam(r, "repo"), ".git"),
		Ref:   strings.TrimSpace(r.URL.Query().Get("ref")),
	}
	if raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/"); raw != "" {
		if decoded, err := url.PathUnescape(raw); err == nil {
			raw = decoded
		}
		t.Path = raw
	}
	return t
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("code", code),
			slog.String("error", err.Error()),
		)
	}
	writeJSON(w, status, errResponse{Error: code})
}

// GetCard handles GET /api/card/{owner}/{repo}[/*].
func (h *handler) GetCard(w http.ResponseWriter, r *http.Request) {
	loaded, err := h.loader.Load(r.Context(), target(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loaded)
}

// GetPage handles GET /card/{owner}/{repo}[/*].
func (h *handler) GetPage(w http.ResponseWriter, r *http.Request) {
	loaded, err := h.loader.Load(r.Context(), target(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	in := shipcard.PageInput{
		Card:     loaded.Card,
		At:       loaded.Location(),
		Metadata: &loaded.Metadata,
	}
	if theme, ok := shipcard.ParseTheme(r.URL.Query().Get("theme")); ok {
		in.Theme = theme
	}

	page, err := h.pages.Render(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// Render handles POST /api/render.
func (h *handler) Render(w http.ResponseWriter, r *http.Request) {
	body, err := fileutil.ReadLimited(r.Body, MaxRenderBodySize)
	if err != nil {
		if !errors.Is(err, fileutil.ErrInputTooLarge) {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "INVALID_BODY"})
			return
		}
		h.fail(w, r, err)
		return
	}

	html, err := h.renderer.Render(r.Context(), string(body))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
