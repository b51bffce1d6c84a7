package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// ServiceOfferingToResponse converts a ServiceOffering entity to its response DTO
func ServiceOfferingToResponse(service *entity.ServiceOffering) *dto.ServiceOfferingResponse {
	if service == nil {
		return nil
	}
	return &dto.ServiceOfferingResponse{
		ID:              service.ID,
		OrganizationID:  service.OrganizationID,
		Name:            service.Name,
		Description:     service.Description,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price.StringFixed(2),
		Active:          service.Active,
		CreatedAt:       service.CreatedAt,
		UpdatedAt:       service.UpdatedAt,
	}
}

// ServiceOfferingsToResponses converts a slice of ServiceOffering entities to response DTOs
func ServiceOfferingsToResponses(services []entity.ServiceOffering) []dto.ServiceOfferingResponse {
	responses := make([]dto.ServiceOfferingResponse, len(services))
	for i, service := range services {
		resp := ServiceOfferingToResponse(&service)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
