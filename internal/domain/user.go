package domain

type Role string

const (
	RoleRenter Role = "RENTER"
	RoleAdmin  Role = "ADMIN"
)

// User is the read model consumed from the profile collaborator.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        Role   `json:"role"`
	IsActive    bool   `json:"is_active"`
	ReferredBy  *int64 `json:"referred_by,omitempty"`
	DeviceToken string `json:"device_token,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
