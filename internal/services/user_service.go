package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/azat-nasyrov-dev/post-test-api/internal/models"
	"github.com/azat-nasyrov-dev/post-test-api/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration, login, profile updates and the
// issuing/verification of bearer tokens.
type UserService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// AuthUser is the serialized shape of a user in API responses. Every
// user-shaped response carries a freshly issued token.
type AuthUser struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username *string `json:"username"`
	Token    string  `json:"token"`
}

// UserResponse wraps a user for the API envelope.
type UserResponse struct {
	User AuthUser `json:"user"`
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser hashes the user's password and inserts the record. There is
// no lookup before the insert: the store's unique constraints on email and
// username are the single authority, so concurrent registrations cannot
// race past the check.
func (s *UserService) RegisterUser(user *models.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailOrUsernameTaken
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user by email and password. A missing user and
// a wrong password are indistinguishable to the caller.
func (s *UserService) LoginUser(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}

// FindUserByID resolves a stored user, typically from token claims.
func (s *UserService) FindUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}
	return user, nil
}

// UpdateUser overwrites the user's email and, when provided, username. The
// store's unique constraints apply here the same as at registration.
func (s *UserService) UpdateUser(userID, email string, username *string) (*models.User, error) {
	user, err := s.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.Email = email
	if username != nil {
		user.Username = username
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailOrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

// GenerateToken issues a signed stateless token carrying the user's
// identity.
func (s *UserService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenDurat).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning its claims. Callers
// treat a failure as an anonymous request, not as a rejection.
func (s *UserService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// BuildUserResponse shapes a user for the API, minting a fresh token on
// every call.
func (s *UserService) BuildUserResponse(user *models.User) (*UserResponse, error) {
	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &UserResponse{
		User: AuthUser{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			Token:    token,
		},
	}, nil
}
