package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"parking-booking/internal/dto/request"
	"parking-booking/internal/usecase"
	"parking-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ParkingHandler struct {
	service usecase.ParkingService
	log     *zap.Logger
}

func NewParkingHandler(service usecase.ParkingService, log *zap.Logger) *ParkingHandler {
	return &ParkingHandler{
		service: service,
		log:     log.With(zap.String("handler", "parking")),
	}
}

// GetParkingLots handles GET /api/parking-lots (public)
func (h *ParkingHandler) GetParkingLots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.service.GetParkingLots(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get parking lots")
		return
	}

	utils.ResponseSuccess(w, "success", lots)
}

// GetParkingLot handles GET /api/parking-lots/{id} (public)
func (h *ParkingHandler) GetParkingLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Parking lot ID is required", nil)
		return
	}

	lot, err := h.service.GetParkingLot(r.Context(), lotID)
	if err != nil {
		h.handleServiceError(w, err, "get parking lot")
		return
	}

	utils.ResponseSuccess(w, "success", lot)
}

// GetLotLayouts handles GET /api/parking-lots/{id}/layouts (public)
func (h *ParkingHandler) GetLotLayouts(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Parking lot ID is required", nil)
		return
	}

	layouts, err := h.service.GetLotLayouts(r.Context(), lotID)
	if err != nil {
		h.handleServiceError(w, err, "get lot layouts")
		return
	}

	utils.ResponseSuccess(w, "success", layouts)
}

// GetLayout handles GET /api/layouts/{id} (public)
func (h *ParkingHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "id")
	if layoutID == "" {
		utils.ResponseBadRequest(w, "Layout ID is required", nil)
		return
	}

	layout, err := h.service.GetLayout(r.Context(), layoutID)
	if err != nil {
		h.handleServiceError(w, err, "get layout")
		return
	}

	utils.ResponseSuccess(w, "success", layout)
}

// GetLotSpaces handles GET /api/parking-lots/{id}/spaces (public)
func (h *ParkingHandler) GetLotSpaces(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Parking lot ID is required", nil)
		return
	}

	spaces, err := h.service.GetLotSpaces(r.Context(), lotID)
	if err != nil {
		h.handleServiceError(w, err, "get lot spaces")
		return
	}

	utils.ResponseSuccess(w, "success", spaces)
}

// ==================== OWNER METHODS ====================

// CreateParkingLot handles POST /api/owner/parking-lots (owner only)
func (h *ParkingHandler) CreateParkingLot(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateParkingLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	lot, err := h.service.CreateParkingLot(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create parking lot")
		return
	}

	utils.ResponseCreated(w, "success", lot)
}

// UpdateParkingLot handles PUT /api/owner/parking-lots/{id} (owner only)
func (h *ParkingHandler) UpdateParkingLot(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Parking lot ID is required", nil)
		return
	}

	var req request.UpdateParkingLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	lot, err := h.service.UpdateParkingLot(r.Context(), userID.String(), lotID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update parking lot")
		return
	}

	utils.ResponseSuccess(w, "success", lot)
}

// GetOwnerParkingLots handles GET /api/owner/parking-lots (owner only)
func (h *ParkingHandler) GetOwnerParkingLots(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lots, err := h.service.GetOwnerParkingLots(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get owner parking lots")
		return
	}

	utils.ResponseSuccess(w, "success", lots)
}

// CreateLayout handles POST /api/owner/layouts (owner only)
func (h *ParkingHandler) CreateLayout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	layout, err := h.service.CreateLayout(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create layout")
		return
	}

	utils.ResponseCreated(w, "success", layout)
}

// UpdateLayout handles PUT /api/owner/layouts/{id} (owner only)
func (h *ParkingHandler) UpdateLayout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	layoutID := chi.URLParam(r, "id")
	if layoutID == "" {
		utils.ResponseBadRequest(w, "Layout ID is required", nil)
		return
	}

	var req request.UpdateLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	layout, err := h.service.UpdateLayout(r.Context(), userID.String(), layoutID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update layout")
		return
	}

	utils.ResponseSuccess(w, "success", layout)
}

// UpdateSpaceStatus handles PATCH /api/owner/parking-lots/{id}/spaces (owner only)
func (h *ParkingHandler) UpdateSpaceStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Parking lot ID is required", nil)
		return
	}

	var req request.UpdateSpaceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	space, err := h.service.UpdateSpaceStatus(r.Context(), userID.String(), lotID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update space status")
		return
	}

	utils.ResponseSuccess(w, "success", space)
}

// handleServiceError handles errors untuk parking lot operations
func (h *ParkingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "not authorized"):
		h.log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
