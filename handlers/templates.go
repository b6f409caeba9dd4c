package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/invoicer/invoicepdf"
)

type TemplateHandler struct {
	generator *invoicepdf.Generator
	logger    *zap.Logger
}

func NewTemplateHandler(gen *invoicepdf.Generator, log *zap.Logger) *TemplateHandler {
	return &TemplateHandler{generator: gen, logger: log}
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, invoicepdf.Templates())
}

// Preview renders the built-in sample invoice in the requested style.
func (h *TemplateHandler) Preview(c *gin.Context) {
	id := c.Param("id")
	if invoicepdf.ResolveStyleID(id) != invoicepdf.StyleID(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	res, err := h.generator.Preview(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.logger, "Failed to generate preview", err)
		return
	}
	writePDF(c, res, true)
}
