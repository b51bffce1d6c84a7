package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// BusinessHoursToResponse converts a BusinessHours entity to its response DTO
func BusinessHoursToResponse(hours *entity.BusinessHours) *dto.BusinessHoursResponse {
	if hours == nil {
		return nil
	}
	return &dto.BusinessHoursResponse{
		ID:             hours.ID,
		OrganizationID: hours.OrganizationID,
		Weekday:        int(hours.Weekday),
		StartTime:      hours.StartTime,
		EndTime:        hours.EndTime,
		Enabled:        hours.Enabled,
		CreatedAt:      hours.CreatedAt,
		UpdatedAt:      hours.UpdatedAt,
	}
}

// BusinessHoursListToResponses converts a slice of BusinessHours entities to response DTOs
func BusinessHoursListToResponses(hours []entity.BusinessHours) []dto.BusinessHoursResponse {
	responses := make([]dto.BusinessHoursResponse, len(hours))
	for i, h := range hours {
		resp := BusinessHoursToResponse(&h)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
