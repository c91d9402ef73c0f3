package dto

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries a Google ID token (one-tap / client-side flow).
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type LoginResponseUser struct {
	ID                 string  `json:"id"`
	UserName           string  `json:"user_name"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	ProgressPercentage float64 `json:"progress_percentage"`
	HasDriveAccess     bool    `json:"has_drive_access"`
}
