package handlers

import (
	"errors"
	"net/http"

	"geofacts/controller"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchRequest struct {
	Country string `json:"country" binding:"required"`
}

// Search runs the full pipeline and returns the resulting view model.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	view, err := h.Controller.Search(c.Request.Context(), req.Country)
	switch {
	case errors.Is(err, controller.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Country name must not be empty"})
	case errors.Is(err, controller.ErrCountryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": controller.MsgLookupFailed, "view": view})
	case err != nil:
		h.logger().Error("search failed", zap.String("country", req.Country), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": controller.MsgLookupFailed})
	default:
		c.JSON(http.StatusOK, view)
	}
}

func (h *Handler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, h.Controller.View())
}

func (h *Handler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.Controller.History())
}
