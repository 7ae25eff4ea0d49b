package rest

import (
	"net/http"

	"minecart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,min=3"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// cookie lifetime matches the JWT expiry
const tokenMaxAge = 24 * 60 * 60

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.d.Users.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("access_token", token, tokenMaxAge, "/", "", false, true)
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": u.ID, "email": u.Email, "username": u.Username, "role": u.Role},
	})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.d.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("access_token", token, tokenMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": u.ID, "email": u.Email, "username": u.Username, "role": u.Role},
	})
}

func (h *handlers) me(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	u, err := h.d.Users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id": u.ID, "email": u.Email, "username": u.Username, "role": u.Role,
	})
}
