package domain

import "time"

type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleStaff UserRole = "staff"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated identity attached to a request by the
// auth middleware.
type Principal struct {
	UserID int64
	Role   UserRole
}

func (p Principal) IsZero() bool { return p.UserID == 0 }

func (p Principal) IsStaff() bool { return p.Role == RoleStaff }

// CanManage reports whether the principal may act on a resource owned by
// ownerUserID. Staff may act on anything.
func (p Principal) CanManage(ownerUserID int64) bool {
	return p.IsStaff() || p.UserID == ownerUserID
}
