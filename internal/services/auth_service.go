package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
	"github.com/ecodrive/ecodrive-api/internal/utils"
)

var (
	// ErrInvalidCredentials hides whether the email exists or the password
	// is wrong
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registration hits an existing account
	ErrEmailTaken = errors.New("email already registered")
)

// AuthService provides methods for user authentication and JWT operations.
// Password verification happens server-side inside the stored procedures;
// this service never sees a hash.
type AuthService struct {
	gw        *gateway.Gateway
	jwtSecret []byte
	log       *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(gw *gateway.Gateway, jwtSecret []byte, log *logrus.Logger) *AuthService {
	return &AuthService{gw: gw, jwtSecret: jwtSecret, log: log}
}

// Login authenticates a user and mints a session token. An empty procedure
// result means the credentials did not match.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	rows, err := s.gw.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		if gateway.IsAuthorization(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrInvalidCredentials
	}

	row := rows[0]
	user := models.User{
		ID:        row.UserID,
		Name:      strVal(row.UserName),
		Email:     strVal(row.UserEmail),
		EcoScore:  intVal(row.EcoScore),
		GreenTier: strVal(row.GreenTier),
		Credits:   intVal(row.Credits),
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Register creates a new account and logs the user straight in
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	userID, err := s.gw.CreateUserWithAuth(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		if gateway.IsBadParams(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := utils.GenerateToken(userID, req.Email, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", userID).Info("user registered")
	return &models.AuthResponse{
		Token: token,
		User:  models.User{ID: userID, Name: req.Name, Email: req.Email},
	}, nil
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int64) int {
	if p == nil {
		return 0
	}
	return int(*p)
}

func f64Val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func boolVal(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
