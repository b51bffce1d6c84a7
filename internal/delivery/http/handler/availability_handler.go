package handler

import (
	"net/http"
	"strconv"
	"time"

	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

// GetAvailability returns the full slot grid for a professional on one date.
// Query parameters: date (required, YYYY-MM-DD), duration_minutes (optional)
// and service_id (optional, overrides duration_minutes).
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	professionalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid professional ID")
		return
	}

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		return
	}

	durationMinutes := 0
	if durationParam := r.URL.Query().Get("duration_minutes"); durationParam != "" {
		durationMinutes, err = strconv.Atoi(durationParam)
		if err != nil || durationMinutes <= 0 {
			response.BadRequest(w, "duration_minutes must be a positive integer")
			return
		}
	}

	var serviceID *uuid.UUID
	if serviceParam := r.URL.Query().Get("service_id"); serviceParam != "" {
		parsed, err := uuid.Parse(serviceParam)
		if err != nil {
			response.BadRequest(w, "Invalid service ID")
			return
		}
		serviceID = &parsed
	}

	availability, err := h.availabilityUsecase.ComputeAvailability(r.Context(), professionalID, date, durationMinutes, serviceID)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to compute availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
