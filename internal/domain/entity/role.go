package entity

// Role is the functional role of a user account
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RoleNurse   Role = "nurse"
	RoleLabTech Role = "lab_tech"
	RolePatient Role = "patient"
)

// ManagedRoles are the non-admin roles whose access can be toggled via RolePermission
var ManagedRoles = []Role{RoleDoctor, RoleNurse, RoleLabTech, RolePatient}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RoleLabTech, RolePatient:
		return true
	}
	return false
}

// IsManaged reports whether the role is subject to RolePermission toggles
func (r Role) IsManaged() bool {
	for _, managed := range ManagedRoles {
		if r == managed {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role belongs to clinical or lab staff
func (r Role) IsStaff() bool {
	return r == RoleDoctor || r == RoleNurse || r == RoleLabTech
}
