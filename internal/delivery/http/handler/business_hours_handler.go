package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BusinessHoursHandler struct {
	hoursUsecase usecase.BusinessHoursUsecase
	validator    *validator.CustomValidator
}

func NewBusinessHoursHandler(hoursUsecase usecase.BusinessHoursUsecase, validator *validator.CustomValidator) *BusinessHoursHandler {
	return &BusinessHoursHandler{
		hoursUsecase: hoursUsecase,
		validator:    validator,
	}
}

func (h *BusinessHoursHandler) CreateHours(w http.ResponseWriter, r *http.Request) {
	callerID, organizationID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateBusinessHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hours, err := h.hoursUsecase.CreateHours(r.Context(), callerID, organizationID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create business hours")
		return
	}

	response.Success(w, http.StatusCreated, "Business hours created successfully", hours)
}

func (h *BusinessHoursHandler) GetHours(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Organization not found in context")
		return
	}

	hours, err := h.hoursUsecase.GetHours(r.Context(), organizationID)
	if err != nil {
		response.InternalServerError(w, "Failed to get business hours")
		return
	}

	response.Success(w, http.StatusOK, "Business hours retrieved successfully", hours)
}

func (h *BusinessHoursHandler) UpdateHours(w http.ResponseWriter, r *http.Request) {
	callerID, organizationID, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid business hours ID")
		return
	}

	var req dto.UpdateBusinessHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hours, err := h.hoursUsecase.UpdateHours(r.Context(), callerID, organizationID, id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update business hours")
		return
	}

	response.Success(w, http.StatusOK, "Business hours updated successfully", hours)
}

func (h *BusinessHoursHandler) DeleteHours(w http.ResponseWriter, r *http.Request) {
	callerID, organizationID, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid business hours ID")
		return
	}

	if err := h.hoursUsecase.DeleteHours(r.Context(), callerID, organizationID, id); err != nil {
		h.writeError(w, err, "Failed to delete business hours")
		return
	}

	response.Success(w, http.StatusOK, "Business hours deleted successfully", nil)
}

func (h *BusinessHoursHandler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return uuid.Nil, uuid.Nil, false
	}
	organizationID, ok := middleware.GetOrganizationIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Organization not found in context")
		return uuid.Nil, uuid.Nil, false
	}
	return callerID, organizationID, true
}

func (h *BusinessHoursHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrBusinessHoursNotFound:
		response.NotFound(w, "Business hours not found")
	case usecase.ErrInvalidHoursWindow:
		response.BadRequest(w, "Business hours window is invalid, use HH:MM with start before end")
	default:
		response.InternalServerError(w, fallback)
	}
}
