package user

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"        // Platform administrator - full access
	RoleStaff       Role = "staff"        // Internal staff - scheduling and approvals
	RoleCrewChief   Role = "crew_chief"   // Worker who leads shifts as CC
	RoleEmployee    Role = "employee"     // Regular worker
	RoleCompanyUser Role = "company_user" // Client company contact
)

type User struct {
	ID              string
	CompanyID       *string
	Email           string
	Name            string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string

	// Role eligibility flags consulted when the worker is assigned to a shift.
	CrewChiefEligible    bool
	ForkOperatorEligible bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin checks if user is a platform administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff checks if user is internal staff or an administrator
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// CanBypassEligibility reports whether the user may be assigned to any role
// regardless of eligibility flags.
func (u *User) CanBypassEligibility() bool {
	return u.IsStaff()
}

// Actor is the authenticated caller of an operation, resolved from JWT claims.
type Actor struct {
	ID        string
	Role      Role
	CompanyID *string
}

// IsStaff checks if the actor is internal staff or an administrator
func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}
