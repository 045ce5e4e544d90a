package handlers

import (
	"net/http"

	"geofacts/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Report renders the current view and the history as a PDF download.
func (h *Handler) Report(c *gin.Context) {
	pdfBytes, err := services.GenerateReportPDF(h.Controller.View(), h.Controller.History(), h.now())
	if err != nil {
		h.logger().Error("PDF generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=geofacts-report.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "GeoFacts API",
		"history": h.Backend,
	})
}
