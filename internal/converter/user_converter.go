package converter

import (
	"medisafe/internal/delivery/dto"
	"medisafe/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Includes the profile when it is loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	id := user.ID
	joined := user.DateJoined
	return &dto.UserResponse{
		ID:          &id,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName(),
		Role:        string(user.Role),
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		DateJoined:  &joined,
		LastLogin:   user.LastLogin,
		Profile:     ProfileToResponse(user.Profile),
	}
}

// PrincipalToResponse renders the acting identity, including the synthetic super admin
func PrincipalToResponse(principal entity.Principal) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          principal.ActorID(),
		Username:    principal.Username,
		Email:       principal.Email,
		FullName:    principal.Username,
		Role:        string(principal.Role()),
		IsActive:    true,
		IsSuperuser: principal.IsSuperAdmin(),
		SuperAdmin:  principal.IsSuperAdmin(),
	}
}

func ProfileToResponse(profile *entity.UserProfile) *dto.ProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.ProfileResponse{
		UserID:                profile.UserID,
		FirstName:             profile.FirstName,
		MiddleName:            profile.MiddleName,
		LastName:              profile.LastName,
		Email:                 profile.Email,
		Sex:                   profile.Sex,
		CivilStatus:           profile.CivilStatus,
		Address:               profile.Address,
		ContactPerson:         profile.ContactPerson,
		RelationshipToPatient: profile.RelationshipToPatient,
		ContactNumber:         profile.ContactNumber,
		PhoneNumber:           profile.PhoneNumber,
		PhoneType:             profile.PhoneType,
		HasPhoto:              profile.PhotoPath != nil,
		DataPrivacyConsent:    profile.DataPrivacyConsent,
		ConsentDate:           profile.ConsentDate,
		UpdatedAt:             profile.UpdatedAt,
	}
	if profile.Birthday != nil {
		birthday := profile.Birthday.Format(entity.DateLayout)
		response.Birthday = &birthday
	}
	return response
}
