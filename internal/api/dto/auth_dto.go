package dto

// LoginRequest payload for the login form.
type LoginRequest struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe string `json:"remember_me" form:"remember_me"`
}

// Remember reports whether the remember-me box was ticked.
func (r LoginRequest) Remember() bool {
	return r.RememberMe == "on" || r.RememberMe == "true"
}

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}
