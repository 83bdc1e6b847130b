package domain

// Role is the closed set of account roles. Guard and navigation sites switch
// exhaustively over it so a new role is a compile-visible change.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEndUser  Role = "enduser"
)

// ParseRole maps a raw string onto the Role enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleEndUser:
		return RoleEndUser, true
	default:
		return "", false
	}
}

type User struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Role         Role   `json:"role"`
	// Business fields, populated only when Role == RoleEndUser.
	CompanyName  string `json:"company_name,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

// Identity is the sanitized projection returned by authentication and
// registration. It never carries the password hash.
type Identity struct {
	ID    int32  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Identity returns the sanitized projection of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
