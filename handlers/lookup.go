package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The routes below expose each pipeline stage on its own, outside the
// controller. They do not touch the view model or the history.

func nameParam(c *gin.Context) (string, bool) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing country name"})
		return "", false
	}
	return name, true
}

func (h *Handler) GetCountry(c *gin.Context) {
	name, ok := nameParam(c)
	if !ok {
		return
	}
	profile := h.Countries.Lookup(c.Request.Context(), name)
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetFunFact(c *gin.Context) {
	name, ok := nameParam(c)
	if !ok {
		return
	}
	fact, err := h.Facts.Generate(c.Request.Context(), name)
	if err != nil {
		h.logger().Warn("fun fact route failed", zap.String("country", name), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate fun fact."})
		return
	}
	c.JSON(http.StatusOK, fact)
}

func (h *Handler) GetNews(c *gin.Context) {
	name, ok := nameParam(c)
	if !ok {
		return
	}
	summary, err := h.News.Summarize(c.Request.Context(), name)
	if err != nil {
		h.logger().Warn("news route failed", zap.String("country", name), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to summarize news."})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetFlights(c *gin.Context) {
	name, ok := nameParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Flights.Lookup(c.Request.Context(), name))
}
