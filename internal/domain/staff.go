package domain

type StaffRole string

const (
	StaffRoleDesk     StaffRole = "DESK"
	StaffRoleDelivery StaffRole = "DELIVERY"
	StaffRoleManager  StaffRole = "MANAGER"
)

type Staff struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         StaffRole `json:"role"`
	PasswordHash string    `json:"-"`
	PushToken    string    `json:"-"`
	CreatedOn    string    `json:"created_on"`
}
