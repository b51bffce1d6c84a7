package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ServiceOfferingHandler struct {
	serviceUsecase usecase.ServiceOfferingUsecase
	validator      *validator.CustomValidator
}

func NewServiceOfferingHandler(serviceUsecase usecase.ServiceOfferingUsecase, validator *validator.CustomValidator) *ServiceOfferingHandler {
	return &ServiceOfferingHandler{
		serviceUsecase: serviceUsecase,
		validator:      validator,
	}
}

func (h *ServiceOfferingHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	callerID, organizationID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateServiceOfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	service, err := h.serviceUsecase.CreateService(r.Context(), callerID, organizationID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create service")
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", service)
}

func (h *ServiceOfferingHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Organization not found in context")
		return
	}

	services, err := h.serviceUsecase.GetActiveServices(r.Context(), organizationID)
	if err != nil {
		response.InternalServerError(w, "Failed to get services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}

func (h *ServiceOfferingHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	service, err := h.serviceUsecase.GetService(r.Context(), serviceID)
	if err != nil {
		h.writeError(w, err, "Failed to get service")
		return
	}

	response.Success(w, http.StatusOK, "Service retrieved successfully", service)
}

func (h *ServiceOfferingHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	callerID, organizationID, ok := h.caller(w, r)
	if !ok {
		return
	}

	serviceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	var req dto.UpdateServiceOfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	service, err := h.serviceUsecase.UpdateService(r.Context(), callerID, organizationID, serviceID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update service")
		return
	}

	response.Success(w, http.StatusOK, "Service updated successfully", service)
}

func (h *ServiceOfferingHandler) DeactivateService(w http.ResponseWriter, r *http.Request) {
	callerID, organizationID, ok := h.caller(w, r)
	if !ok {
		return
	}

	serviceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	if err := h.serviceUsecase.DeactivateService(r.Context(), callerID, organizationID, serviceID); err != nil {
		h.writeError(w, err, "Failed to deactivate service")
		return
	}

	response.Success(w, http.StatusOK, "Service deactivated successfully", nil)
}

func (h *ServiceOfferingHandler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
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

func (h *ServiceOfferingHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrServiceNotFound:
		response.NotFound(w, "Service not found")
	case usecase.ErrInvalidPrice:
		response.BadRequest(w, "Invalid price format")
	default:
		response.InternalServerError(w, fallback)
	}
}
