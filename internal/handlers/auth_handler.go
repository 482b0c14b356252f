package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spendwise/internal/logger"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// AuthHandler handles sign-up, login, logout and the current user.
type AuthHandler struct {
	userService    services.UserServicer
	sessionService services.SessionServicer
	cookie         CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, sessionService services.SessionServicer, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		sessionService: sessionService,
		cookie:         cookie,
	}
}

// SignUpRequest represents the sign-up request payload
type SignUpRequest struct {
	Username string        `json:"username" binding:"max=50"`
	Name     string        `json:"name" binding:"max=100"`
	Password string        `json:"password" binding:"max=128"`
	Gender   models.Gender `json:"gender" binding:"omitempty,gender"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a session has been opened. The token is
// also set as the session cookie.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// CurrentUserResponse wraps the session's user, null when anonymous.
type CurrentUserResponse struct {
	User *models.User `json:"user"`
}

// SignUp handles user registration
// @Summary     Sign up
// @Description Register a new user and open a session for it
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignUpRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and logged in"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Username already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.SignUp(services.SignUpInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		Gender:   req.Gender,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.startSession(c, http.StatusCreated, user)
}

// Login handles user login
// @Summary     Log in
// @Description Verify a username and password and open a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.startSession(c, http.StatusOK, user)
}

func (h *AuthHandler) startSession(c *gin.Context, status int, user *models.User) {
	token, err := h.sessionService.Create(user, sessionMeta(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.cookie.set(c, token)
	c.JSON(status, AuthResponse{Token: token, User: *user})
}

// Logout handles session teardown
// @Summary     Log out
// @Description Revoke the current session and clear the session cookie. Always succeeds.
// @Tags        auth
// @Produce     json
// @Success     200 {object} MessageResponse "Logged out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Revoke(sessionToken(c, h.cookie.Name)); err != nil {
		logger.Get().Warnw("failed to revoke session", "error", err, "user_id", actorID(c))
	}

	h.cookie.clear(c)
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me returns the current user
// @Summary     Current user
// @Description Return the user of the current session, or null when not logged in
// @Tags        auth
// @Produce     json
// @Success     200 {object} CurrentUserResponse "Current user"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUserResponse{User: currentUser(c)})
}
