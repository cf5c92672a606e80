package server

import (
	"net/url"
	"time"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string  `json:"username"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
		FullName *string `json:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	resp, err := s.authService.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	resp, err := s.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

// Refresh handles POST /api/auth/refresh. It exchanges a valid refresh token
// for a new access token; the refresh token itself is not rotated.
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Refresh token is required"))
	}

	access, err := s.authService.RefreshAccessToken(c.Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"access_token": access})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so logout is a
// client-side discard; the endpoint exists so clients have a uniform flow.
func (s *Server) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// GetProfile handles GET /api/auth/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.authService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GoogleRedirect handles GET /api/auth/google. It sets a state cookie and
// redirects the browser to Google's consent screen.
func (s *Server) GoogleRedirect(c *fiber.Ctx) error {
	if s.google == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Google sign-in is not configured"))
	}

	state := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(s.google.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/auth/google/callback. On success the
// browser is redirected to the frontend callback with both tokens in the
// query string.
func (s *Server) GoogleCallback(c *fiber.Ctx) error {
	if s.google == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Google sign-in is not configured"))
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid OAuth state"))
	}
	c.ClearCookie(oauthStateCookie)

	code := c.Query("code")
	if code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing authorization code"))
	}

	info, err := s.google.FetchUser(c.Context(), code)
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "google code exchange failed", "error", err)
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Google authentication failed"))
	}

	resp, err := s.authService.GoogleLogin(c.Context(), service.GoogleUserInput{
		GoogleID:  info.ID,
		Email:     info.Email,
		FullName:  info.Name,
		AvatarURL: info.Picture,
	})
	if err != nil {
		return respondError(c, err)
	}

	redirect := s.config.FrontendURL + "/auth/callback?token=" +
		url.QueryEscape(resp.AccessToken) + "&refresh=" + url.QueryEscape(resp.RefreshToken)
	return c.Redirect(redirect, fiber.StatusTemporaryRedirect)
}
