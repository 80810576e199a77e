package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"isuride/backend/services/owner-service/internal/http/middleware"
	"isuride/backend/services/owner-service/internal/models"
)

// ChairLister is the query the handler depends on.
type ChairLister interface {
	ListChairsForOwner(ctx context.Context, ownerID string) ([]models.ChairWithDistance, error)
}

type ownerChair struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Model                  string `json:"model"`
	Active                 bool   `json:"active"`
	RegisteredAt           int64  `json:"registered_at"`
	TotalDistance          int64  `json:"total_distance"`
	TotalDistanceUpdatedAt *int64 `json:"total_distance_updated_at,omitempty"`
}

type ownerChairsResponse struct {
	Chairs []ownerChair `json:"chairs"`
}

// OwnerChairsHandler serves the owner chair listing.
type OwnerChairsHandler struct {
	svc    ChairLister
	logger *zap.Logger
}

// NewOwnerChairsHandler builds handler.
func NewOwnerChairsHandler(svc ChairLister, logger *zap.Logger) *OwnerChairsHandler {
	return &OwnerChairsHandler{svc: svc, logger: logger}
}

// ServeHTTP handles GET /api/owner/chairs.
func (h *OwnerChairsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	chairs, err := h.svc.ListChairsForOwner(r.Context(), owner.ID)
	if err != nil {
		h.logger.Error("list owner chairs failed", zap.String("owner_id", owner.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch chairs")
		return
	}

	writeJSON(w, http.StatusOK, toOwnerChairsResponse(chairs))
}

func toOwnerChairsResponse(chairs []models.ChairWithDistance) ownerChairsResponse {
	resp := ownerChairsResponse{Chairs: make([]ownerChair, 0, len(chairs))}
	for _, c := range chairs {
		item := ownerChair{
			ID:            c.ID,
			Name:          c.Name,
			Model:         c.Model,
			Active:        c.IsActive,
			RegisteredAt:  c.RegisteredAtMillis(),
			TotalDistance: c.TotalDistance,
		}
		if at, ok := c.TotalDistanceUpdatedAtMillis(); ok {
			item.TotalDistanceUpdatedAt = &at
		}
		resp.Chairs = append(resp.Chairs, item)
	}
	return resp
}
