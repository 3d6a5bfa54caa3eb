package models

// User is the minimal logged-in-user session record. It is created at login
// from the authenticate_user result and never refreshed mid-session.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	EcoScore  int    `json:"eco_score"`
	GreenTier string `json:"green_tier"`
	Credits   int    `json:"credits"`
}

// RegisterRequest is for creating a new user account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is for authenticating an existing user
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful login or registration
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RedeemCreditsRequest spends credits from the caller's balance
type RedeemCreditsRequest struct {
	Credits int `json:"credits" validate:"required,gt=0"`
}

// AwardCreditsRequest grants credits for completed eco savings
type AwardCreditsRequest struct {
	EcoSavings     float64 `json:"eco_savings" validate:"gte=0"`
	TierMultiplier float64 `json:"tier_multiplier" validate:"omitempty,gt=0"`
}

// UpdateEcoScoreRequest adds points to a user's eco score
type UpdateEcoScoreRequest struct {
	AdditionalScore int `json:"additional_score" validate:"required,gt=0"`
}
