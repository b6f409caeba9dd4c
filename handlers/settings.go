package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/invoicer/models"
	"github.com/yourusername/invoicer/store"
)

type SettingsHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewSettingsHandler(st *store.Store, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: st, logger: log}
}

// SettingsRequest replaces every field. An unknown invoiceTemplate is stored
// as given and renders in the default style.
type SettingsRequest struct {
	FreelancerName   string `json:"freelancerName"`
	Address          string `json:"address"`
	Email            string `json:"email" binding:"omitempty,email"`
	BankName         string `json:"bankName"`
	AccountHolder    string `json:"accountHolder"`
	AccountNumber    string `json:"accountNumber"`
	Swift            string `json:"swift"`
	BankCountry      string `json:"bankCountry"`
	BankCurrency     string `json:"bankCurrency" binding:"omitempty,len=3"`
	FilenameTemplate string `json:"filenameTemplate"`
	InvoiceTemplate  string `json:"invoiceTemplate"`
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.EnsureSettings(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, "Failed to load settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.Settings{
		FreelancerName:   req.FreelancerName,
		Address:          req.Address,
		Email:            req.Email,
		BankName:         req.BankName,
		AccountHolder:    req.AccountHolder,
		AccountNumber:    req.AccountNumber,
		Swift:            req.Swift,
		BankCountry:      req.BankCountry,
		BankCurrency:     req.BankCurrency,
		FilenameTemplate: req.FilenameTemplate,
		InvoiceTemplate:  req.InvoiceTemplate,
	}
	if err := h.store.SaveSettings(c.Request.Context(), &settings); err != nil {
		internalError(c, h.logger, "Failed to save settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
