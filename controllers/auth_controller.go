package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"hotel-booking/cache"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	UserSvc *services.UserService
	Cache   *cache.Cache
}

func NewAuthController(userSvc *services.UserService, c *cache.Cache) *AuthController {
	return &AuthController{UserSvc: userSvc, Cache: c}
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Register (POST /api/auth/register)
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	user, err := ctrl.UserSvc.Register(c.Request.Context(), payload.FullName, payload.Email, payload.Password)
	if err != nil {
		switch {
		case err.Error() == "email_already_registered":
			utils.JSONError(c, http.StatusConflict, "email already registered")
		default:
			log.Printf("❌ register failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login (POST /api/auth/login)
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	user, err := ctrl.UserSvc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if err.Error() == "invalid_credentials" {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("❌ login failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "login failed")
		return
	}

	token, err := generateTokenHex(32)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout (POST /api/auth/logout) — drops every cached response so the
// next session starts from fresh reads.
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.Cache.ClearAll(c.Request.Context())
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "logged out"})
}
