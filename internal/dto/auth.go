package dto

// RegisterRequest defines the data needed to open an account.
type RegisterRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	PIN         string `json:"pin" binding:"required"`
}

// LoginRequest defines the credential pair for login. Identifier matches
// either the account email or its phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	PIN        string `json:"pin" binding:"required"`
}

// AuthResponse carries the issued token and the account it identifies.
type AuthResponse struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}
