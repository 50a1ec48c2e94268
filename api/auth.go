package api

import (
	"net/http"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/middleware"
	"github.com/Domenick1991/tripavista/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register expects middleware.Session to run before these routes.
func (h *AuthHandler) Register(router gin.IRoutes) {
	router.POST("/auth/sign-in", h.signIn)
	router.POST("/auth/sign-out", h.signOut)
	router.GET("/profile", h.profile)
	router.PUT("/profile", h.updateProfile)
}

func (h *AuthHandler) signIn(c *gin.Context) {
	var req signInRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	result, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) signOut(c *gin.Context) {
	if _, err := h.service.SignOut(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) profile(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) updateProfile(c *gin.Context) {
	var req domain.Profile
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	profile, err := h.service.UpdateProfile(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
