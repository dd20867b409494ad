package models

// UserProfile is the application profile stored next to a Supabase auth user.
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	UserType string `json:"user_type"`
}

// IsAdmin reports whether the profile grants admin access.
func (p UserProfile) IsAdmin() bool {
	return p.UserType == "admin"
}

// AdminCheck is the response body of the admin check endpoint.
type AdminCheck struct {
	Success bool      `json:"success"`
	IsAdmin bool      `json:"isAdmin"`
	User    AdminUser `json:"user"`
}

// AdminUser identifies the caller of the admin check.
type AdminUser struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Profile UserProfile `json:"profile"`
}
