package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		OrganizationID:     appointment.OrganizationID,
		ProfessionalID:     appointment.ProfessionalID,
		PatientID:          appointment.PatientID,
		ServiceID:          appointment.ServiceID,
		StartAt:            appointment.StartAt,
		EndAt:              appointment.EndAt,
		Status:             string(appointment.Status),
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	// Include professional info if preloaded
	if appointment.Professional.UserID != uuid.Nil {
		response.Professional = ProfessionalProfileToResponse(&appointment.Professional)
	}
	if appointment.Service != nil {
		response.Service = ServiceOfferingToResponse(appointment.Service)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
