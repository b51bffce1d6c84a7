package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// SlotsToResponses converts computed slots to response DTOs, preserving order.
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			Time:   slot.Label,
			Status: string(slot.Status),
		}
	}
	return responses
}
