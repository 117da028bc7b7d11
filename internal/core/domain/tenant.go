package domain

import "time"

// TenantUserRef is the user summary embedded in tenant reads.
type TenantUserRef struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Tenant is the rental profile attached to a user account.
type Tenant struct {
	ID        int            `json:"id"`
	UserID    int            `json:"user_id"`
	User      *TenantUserRef `json:"user,omitempty"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
