package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfessionalProfileToResponse converts a ProfessionalProfile entity to its response DTO
func ProfessionalProfileToResponse(profile *entity.ProfessionalProfile) *dto.ProfessionalProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.ProfessionalProfileResponse{
		UserID:         profile.UserID,
		OrganizationID: profile.OrganizationID,
		LicenseNumber:  profile.LicenseNumber,
		Specialty:      profile.Specialty,
		Biography:      profile.Biography,
	}

	if profile.User.ID != uuid.Nil {
		response.FullName = profile.User.FullName
		response.Email = profile.User.Email
	}

	return response
}

// ProfessionalProfilesToResponses converts a slice of ProfessionalProfile entities to response DTOs
func ProfessionalProfilesToResponses(profiles []entity.ProfessionalProfile) []dto.ProfessionalProfileResponse {
	responses := make([]dto.ProfessionalProfileResponse, len(profiles))
	for i, profile := range profiles {
		resp := ProfessionalProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PatientProfileToResponse converts a PatientProfile entity to its response DTO
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientProfileResponse{
		UserID:      profile.UserID,
		PhoneNumber: profile.PhoneNumber,
		DateOfBirth: profile.DateOfBirth,
		Gender:      profile.Gender,
		Address:     profile.Address,
	}

	if profile.User.ID != uuid.Nil {
		response.FullName = profile.User.FullName
	}

	return response
}

// UserToResponse converts a User entity to its response DTO
func UserToResponse(user *entity.User, roleName string) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                  user.ID,
		OrganizationID:      user.OrganizationID,
		Email:               user.Email,
		FullName:            user.FullName,
		Role:                roleName,
		ProfessionalProfile: ProfessionalProfileToResponse(user.ProfessionalProfile),
		PatientProfile:      PatientProfileToResponse(user.PatientProfile),
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}
