package controllers

import (
	"fmt"
	"log"
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(userSvc *services.UserService) *UserController {
	return &UserController{UserSvc: userSvc}
}

// GetUsers (GET /api/users) — admin listing.
func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("❌ failed to list users: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser (DELETE /api/users/:id)
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.UserSvc.Delete(c.Request.Context(), id); err != nil {
		if err.Error() == "user_not_found" {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("user %d not found", id))
			return
		}
		log.Printf("❌ failed to delete user %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete user")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "user deleted"})
}
