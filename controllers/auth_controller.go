package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frazhaidry/DebugDairy/config"
	"github.com/frazhaidry/DebugDairy/middlewares"
	"github.com/frazhaidry/DebugDairy/models"
	"github.com/frazhaidry/DebugDairy/repositories"
	"github.com/frazhaidry/DebugDairy/utils"
	"github.com/frazhaidry/DebugDairy/validation"
)

var validate = validator.New()

// AuthController handles registration, login, logout and caller lookup.
type AuthController struct {
	cfg   config.Config
	users repositories.UserRepository
}

func NewAuthController(cfg config.Config, users repositories.UserRepository) *AuthController {
	return &AuthController{cfg: cfg, users: users}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register validates the payload, rejects duplicate emails and stores the
// user with a hashed password. The hash never leaves the server.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Message(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	name, email, password, err := validation.ValidateRegistration(req.Name, req.Email, req.Password)
	if err != nil {
		utils.Message(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := ac.users.FindByEmail(ctx, email); err == nil {
		utils.Message(c, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		ac.internalError(c, "register email lookup", err)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		ac.internalError(c, "password hash", err)
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validate.Struct(user); err != nil {
		utils.Message(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	if err := ac.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			utils.Message(c, http.StatusBadRequest, "User already exists")
			return
		}
		ac.internalError(c, "register insert", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login answers 400 "Invalid credentials" for unknown email and for wrong
// password alike, so callers cannot probe which accounts exist.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Message(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	email, password, err := validation.ValidateLogin(req.Email, req.Password)
	if err != nil {
		utils.Message(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ac.users.FindByEmailWithPassword(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Message(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		ac.internalError(c, "login lookup", err)
		return
	}

	if !utils.CheckPassword(user.Password, password) {
		utils.Message(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := utils.SignToken(ac.cfg.JWTSecret, user.ID)
	if err != nil {
		ac.internalError(c, "token sign", err)
		return
	}

	ac.setSessionCookie(c, token, int(utils.TokenTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Logout clears the session cookie. Idempotent: succeeds whether or not a
// session existed.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.setSessionCookie(c, "", -1)
	utils.Message(c, http.StatusOK, "Logout successful")
}

// Me echoes the caller the auth gate resolved.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.Message(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// setSessionCookie writes the httpOnly token cookie. Production gets Secure
// plus SameSite=None so the browser sends it cross-site; elsewhere Lax.
func (ac *AuthController) setSessionCookie(c *gin.Context, token string, maxAge int) {
	if ac.cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie("token", token, maxAge, "/", "", ac.cfg.IsProduction(), true)
}

func (ac *AuthController) internalError(c *gin.Context, op string, err error) {
	utils.Sugar.Errorw("auth: "+op, "error", err)
	utils.Message(c, http.StatusInternalServerError, "Internal server error")
}
