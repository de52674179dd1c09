package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flintapp/flint/internal/domain"
	"github.com/flintapp/flint/internal/logger"
	"github.com/flintapp/flint/internal/service"
	"github.com/flintapp/flint/internal/transport/http/middleware"
	"github.com/flintapp/flint/pkg/validator"
)

type SwipeHandler struct {
	discoveryService *service.DiscoveryService
	swipeService     *service.SwipeService
}

func NewSwipeHandler(discoveryService *service.DiscoveryService, swipeService *service.SwipeService) *SwipeHandler {
	return &SwipeHandler{
		discoveryService: discoveryService,
		swipeService:     swipeService,
	}
}

// Next serves the next undecided candidate. An exhausted pool is a
// 200 with a null profile, not an error.
func (h *SwipeHandler) Next(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.discoveryService.NextCandidate(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			logger.Error("next candidate failed", "err", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *SwipeHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		ToUserID int64  `json:"toUserId"`
		Action   string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateSwipe(input.ToUserID, input.Action); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	matched, err := h.swipeService.Record(r.Context(), userID, input.ToUserID, domain.SwipeAction(input.Action))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction):
			writeError(w, http.StatusBadRequest, "INVALID_ACTION", "Action must be like, dislike or superlike")
		case errors.Is(err, service.ErrSelfSwipe):
			writeError(w, http.StatusBadRequest, "SELF_SWIPE", "Cannot swipe on yourself")
		default:
			logger.Error("record swipe failed", "err", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"match": matched})
}

func (h *SwipeHandler) LikedYouCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.swipeService.LikedYouCount(r.Context(), userID)
	if err != nil {
		logger.Error("liked-you count failed", "err", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}
