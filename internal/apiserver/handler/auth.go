package handler

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/apiserver/middleware"
	"github.com/arachchispices/spicestore/internal/apiserver/session"
	"github.com/arachchispices/spicestore/internal/common/config"
	"github.com/arachchispices/spicestore/internal/common/errorx"
	"github.com/arachchispices/spicestore/internal/i18n"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,}$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Auth implements registration, login, logout and session inspection.
type Auth struct {
	store    database.Store
	sessions session.Store
	cfg      *config.SessionConfig
	logger   *zap.Logger
}

// NewAuth creates the auth handler.
func NewAuth(store database.Store, sessions session.Store, cfg *config.SessionConfig, logger *zap.Logger) *Auth {
	return &Auth{
		store:    store,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger.Named("handler.auth"),
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account. Validation runs username, email, password in
// that order and the first violation wins. Registration does not log in.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	if !usernameRegex.MatchString(req.Username) {
		i18n.RespondWithError(c, errorx.ErrInvalidUsername)
		return
	}
	if !emailRegex.MatchString(req.Email) {
		i18n.RespondWithError(c, errorx.ErrInvalidEmail)
		return
	}
	if len(req.Password) < 6 {
		i18n.RespondWithError(c, errorx.ErrWeakPassword)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	role := database.RoleUser
	if req.Role == string(database.RoleAdmin) {
		role = database.RoleAdmin
	}

	user := &database.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password produce distinct errors.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, errorx.ErrInvalidInput.WithMessage(err.Error()))
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, errorx.ErrUserNotFound) {
			i18n.RespondWithError(c, errorx.ErrEmailNotFound)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		i18n.RespondWithError(c, errorx.ErrIncorrectPassword)
		return
	}

	principal := &session.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	id, err := h.sessions.Create(c.Request.Context(), principal, h.cfg.TTL.Duration())
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, id, int(h.cfg.TTL.Duration().Seconds()), "/", "", h.cfg.CookieSecure, true)

	h.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	c.JSON(http.StatusOK, gin.H{
		"message": i18n.TranslateMessage(c, "message.login_success", nil),
		"user":    user,
	})
}

// Logout destroys the session if one exists. Always 200.
func (h *Auth) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.cfg.CookieName); err == nil && id != "" {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			h.logger.Warn("failed to delete session", zap.Error(err))
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	i18n.RespondWithMessage(c, http.StatusOK, "message.logout_success")
}

// Session returns the logged-in user. The user is re-fetched so a session
// for a user the store no longer has reports user-not-found.
func (h *Auth) Session(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		i18n.RespondWithError(c, errorx.ErrNoSession)
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), p.UserID)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
