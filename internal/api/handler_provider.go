package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/pointwallet/internal/repos/points"
	"github.com/fastprodman/pointwallet/internal/services/point"
)

// PointService is what the HTTP layer needs from the domain.
type PointService interface {
	GetPoint(ctx context.Context, userID int64) (points.UserPoint, error)
	GetHistory(ctx context.Context, userID int64) ([]points.PointHistory, error)
	Charge(ctx context.Context, userID, amount int64) (points.UserPoint, error)
	Use(ctx context.Context, userID, amount int64) (points.UserPoint, error)
}

// HandlerProvider wraps a PointService and exposes HTTP handlers.
type HandlerProvider struct {
	svc PointService
}

// NewHandler returns a new handler provider.
func NewHandler(svc PointService) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain error kinds to status codes. Business-rule
// violations surface as 500, matching the wire contract of the service this
// one replaces.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, point.ErrInvalidUser), errors.Is(err, point.ErrInvalidAmount):
		writeError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request canceled")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseUserIDFromPath reads `{id}` from chi routes like GET /point/{id}.
// Negative ids parse fine here; rejecting them is the domain's call.
func parseUserIDFromPath(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, fmt.Errorf("missing id")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", err)
	}

	return id, nil
}

// parseAmountBody decodes a request body that is a bare JSON integer.
func parseAmountBody(r *http.Request) (int64, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}

	var amount int64

	err = json.Unmarshal(body, &amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount body: %w", err)
	}

	return amount, nil
}

// --- Handlers ---

// GetPointHandler handles GET /point/{id}.
func (h *HandlerProvider) GetPointHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id in path")
		return
	}

	up, err := h.svc.GetPoint(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, up)
}

// GetHistoryHandler handles GET /point/{id}/histories.
func (h *HandlerProvider) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id in path")
		return
	}

	histories, err := h.svc.GetHistory(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, histories)
}

// ChargeHandler handles PATCH /point/{id}/charge.
func (h *HandlerProvider) ChargeHandler(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.Charge)
}

// UseHandler handles PATCH /point/{id}/use.
func (h *HandlerProvider) UseHandler(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.Use)
}

func (h *HandlerProvider) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID, amount int64) (points.UserPoint, error),
) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id in path")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<10) // the body is one integer
	defer r.Body.Close()

	amount, err := parseAmountBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON integer")
		return
	}

	up, err := op(r.Context(), userID, amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, up)
}
