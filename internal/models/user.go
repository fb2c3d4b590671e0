package models

import "gorm.io/gorm"

// User roles.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User represents an account on the platform. The same account may browse
// the storefront, run a seller portal (role "seller") or administer the
// site (role "admin").
type User struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username    string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string `json:"-" gorm:"type:varchar(255)" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
	Bio         string `json:"bio" validate:"omitempty,max=500"`
	Role        string `json:"role" gorm:"type:varchar(16);default:buyer" validate:"omitempty,oneof=buyer seller admin"`

	// Per-type notification opt-ins. A disabled type suppresses the
	// notification row entirely rather than queueing it.
	NotifyOrders  bool `json:"notify_orders" gorm:"default:true"`
	NotifyReviews bool `json:"notify_reviews" gorm:"default:true"`
	NotifyForum   bool `json:"notify_forum" gorm:"default:true"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
