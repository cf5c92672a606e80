// Package service contains the business logic between HTTP handlers and
// repositories. All failures are returned as *models.AppError.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// usernameAttempts bounds the generated-username retry loop on OAuth signup.
const usernameAttempts = 5

// AuthService validates credentials, links OAuth identities and issues tokens.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// RegisterInput is the payload for local account registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName *string
}

// GoogleUserInput is the verified profile returned by the OAuth provider.
type GoogleUserInput struct {
	GoogleID  string
	Email     string
	FullName  string
	AvatarURL string
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates a local-provider user after checking that email and
// username are each globally unique, then issues tokens.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.AuthResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already exists")
	}

	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	hash := string(hashed)

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: &hash,
		FullName:     in.FullName,
		Provider:     models.ProviderLocal,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The pre-checks race with concurrent inserts; the unique index is
		// the real arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Email or username already exists")
		}
		return nil, models.NewInternalError(err)
	}

	return s.issueTokens(user)
}

// Login authenticates a local user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetLocalByEmail(ctx, email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil || user.PasswordHash == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	return s.issueTokens(user)
}

// GoogleLogin resolves an OAuth identity three ways: an existing linked
// account is refreshed, an account sharing the email is linked, and otherwise
// a new account is created with a generated username.
func (s *AuthService) GoogleLogin(ctx context.Context, in GoogleUserInput) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, in.GoogleID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user != nil {
		if in.FullName != "" {
			user.FullName = &in.FullName
		}
		if in.AvatarURL != "" {
			user.AvatarURL = &in.AvatarURL
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, models.NewInternalError(err)
		}
		return s.issueTokens(user)
	}

	user, err = s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user != nil {
		// Link the Google identity to the existing account. External values
		// win when present, existing values are kept otherwise.
		user.GoogleID = &in.GoogleID
		user.Provider = models.ProviderGoogle
		if in.FullName != "" {
			user.FullName = &in.FullName
		}
		if in.AvatarURL != "" {
			user.AvatarURL = &in.AvatarURL
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, models.NewInternalError(err)
		}
		return s.issueTokens(user)
	}

	user, err = s.createGoogleUser(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

// createGoogleUser creates a new account with a username derived from the
// email local-part plus a random numeric suffix, retrying on collisions up to
// a bound.
func (s *AuthService) createGoogleUser(ctx context.Context, in GoogleUserInput) (*models.User, error) {
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		user := &models.User{
			Username: generateUsername(in.Email),
			Email:    in.Email,
			GoogleID: &in.GoogleID,
			Provider: models.ProviderGoogle,
		}
		if in.FullName != "" {
			user.FullName = &in.FullName
		}
		if in.AvatarURL != "" {
			user.AvatarURL = &in.AvatarURL
		}

		err := s.userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewInternalError(err)
		}
	}
	return nil, models.NewConflictError("Could not allocate a unique username")
}

func generateUsername(email string) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	return fmt.Sprintf("%s%d", local, rand.Intn(10000))
}

// RefreshAccessToken verifies the refresh token and issues a new access token.
// The refresh token is not rotated.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", models.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if user == nil {
		return "", models.NewUnauthorizedError("User not found")
	}

	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return access, nil
}

// GetProfile loads the user for the authenticated subject. The password hash
// is excluded from serialization by its json tag.
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("User not found")
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*models.AuthResponse, error) {
	access, refresh, err := s.tokens.IssueTokens(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
