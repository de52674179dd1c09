package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/flintapp/flint/internal/logger"
	"github.com/flintapp/flint/internal/service"
	"github.com/flintapp/flint/internal/transport/http/middleware"
	"github.com/flintapp/flint/pkg/validator"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.profileService.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			logger.Error("get profile failed", "err", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProfileUpdate(
		input.DisplayName, input.Age, input.MinAgePref, input.MaxAgePref,
		input.DistanceKM, input.LocationLat, input.LocationLng,
	); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	profile, err := h.profileService.UpdateMe(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			logger.Error("update profile failed", "err", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.profileService.Deactivate(r.Context(), userID); err != nil {
		logger.Error("deactivate failed", "err", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		ImageURL  string `json:"image_url"`
		SortOrder int    `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "MISSING_IMAGE_URL", "image_url is required")
		return
	}

	photo, err := h.profileService.AddPhoto(r.Context(), userID, input.ImageURL, input.SortOrder)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			logger.Error("add photo failed", "err", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, photo)
}

func (h *ProfileHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	photoID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid photo ID")
		return
	}

	if err := h.profileService.DeletePhoto(r.Context(), userID, photoID); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		} else {
			logger.Error("delete photo failed", "err", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
