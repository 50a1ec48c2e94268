package api

import (
	"net/http"

	"github.com/Domenick1991/tripavista/internal/service/contact"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service contact.ContactUseCase
}

func NewContactHandler(service contact.ContactUseCase) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Register(router gin.IRoutes) {
	router.POST("/contact", h.submit)
}

func (h *ContactHandler) submit(c *gin.Context) {
	var req contact.Message
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.Submit(c.Request.Context(), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, noticeResponse{Message: contact.ReceivedNotice})
}
