package model

import "time"

// User represents a registered intern account.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	School       string    `json:"school,omitempty"`
	PUCollege    string    `json:"pu_college,omitempty"`
	College      string    `json:"college,omitempty"`
	Course       string    `json:"course,omitempty"`
	Degree       string    `json:"degree,omitempty"`
	YearOfStudy  string    `json:"year_of_study,omitempty"`
	Skills       []string  `json:"skills"`
	ResumeURL    string    `json:"resume_url,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserLoginRequest is the payload for intern authentication.
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UserLoginResponse is returned after successful intern login.
type UserLoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SendOTPRequest is the payload for requesting an email verification code.
type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// AttachmentPayload carries one encoded binary attachment inside the
// registration request: raw content as standard base64, plus the original
// filename and the declared content type.
type AttachmentPayload struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	Data        string `json:"data" binding:"required"`
}

// RegisterRequest is the single atomic account-creation payload. Resume and
// photo are optional; the OTP must match the outstanding challenge for Email.
type RegisterRequest struct {
	Name        string             `json:"name" binding:"required,min=2,max=100"`
	Email       string             `json:"email" binding:"required,email,max=255"`
	Phone       string             `json:"phone" binding:"required,min=7,max=20"`
	Password    string             `json:"password" binding:"required,min=6,max=128"`
	OTP         string             `json:"otp" binding:"required,numeric,min=4,max=8"`
	School      string             `json:"school" binding:"omitempty,max=150"`
	PUCollege   string             `json:"pu_college" binding:"omitempty,max=150"`
	College     string             `json:"college" binding:"omitempty,max=150"`
	Course      string             `json:"course" binding:"omitempty,max=100"`
	Degree      string             `json:"degree" binding:"omitempty,max=100"`
	YearOfStudy string             `json:"year_of_study" binding:"omitempty,max=20"`
	Skills      []string           `json:"skills" binding:"omitempty,dive,max=50"`
	Resume      *AttachmentPayload `json:"resume,omitempty"`
	Photo       *AttachmentPayload `json:"photo,omitempty"`
}

// RegisterResponse is returned after successful registration; its shape
// matches UserLoginResponse so the client can treat both as a session start.
type RegisterResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
