package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/invoicer/models"
	"github.com/yourusername/invoicer/store"
)

type ContractHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewContractHandler(st *store.Store, log *zap.Logger) *ContractHandler {
	return &ContractHandler{store: st, logger: log}
}

// ContractRequest leaves optional fields at their zero value; the store fills
// in the documented defaults.
type ContractRequest struct {
	ClientID            string               `json:"clientId" binding:"required"`
	DescriptionTemplate string               `json:"descriptionTemplate"`
	UnitPrice           float64              `json:"unitPrice" binding:"gte=0"`
	Currency            string               `json:"currency" binding:"omitempty,len=3"`
	Quantity            float64              `json:"quantity" binding:"gte=0"`
	DueDays             int                  `json:"dueDays" binding:"gte=0"`
	DueDateMethod       models.DueDateMethod `json:"dueDateMethod" binding:"omitempty,oneof=days endOfNextMonth"`
}

func (r ContractRequest) apply(contract *models.Contract) {
	contract.ClientID = r.ClientID
	contract.DescriptionTemplate = r.DescriptionTemplate
	contract.UnitPrice = r.UnitPrice
	contract.Currency = r.Currency
	contract.Quantity = r.Quantity
	contract.DueDays = r.DueDays
	contract.DueDateMethod = r.DueDateMethod
}

// bindContract binds the request and checks that its client exists. It writes
// the error response itself and reports whether the handler may continue.
func (h *ContractHandler) bindContract(c *gin.Context) (ContractRequest, bool) {
	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	client, err := h.store.GetClientByID(c.Request.Context(), req.ClientID)
	if err != nil {
		internalError(c, h.logger, "Failed to load client", err)
		return req, false
	}
	if client == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client does not exist"})
		return req, false
	}
	return req, true
}

func (h *ContractHandler) ListContracts(c *gin.Context) {
	contracts, err := h.store.ListContracts(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, "Failed to list contracts", err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.store.GetContractByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to load contract", err)
		return
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) CreateContract(c *gin.Context) {
	req, ok := h.bindContract(c)
	if !ok {
		return
	}

	var contract models.Contract
	req.apply(&contract)
	if err := h.store.CreateContract(c.Request.Context(), &contract); err != nil {
		internalError(c, h.logger, "Failed to create contract", err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandler) UpdateContract(c *gin.Context) {
	ctx := c.Request.Context()
	contract, err := h.store.GetContractByID(ctx, c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to load contract", err)
		return
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	req, ok := h.bindContract(c)
	if !ok {
		return
	}
	req.apply(contract)
	if err := h.store.UpdateContract(ctx, contract); err != nil {
		internalError(c, h.logger, "Failed to update contract", err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) DeleteContract(c *gin.Context) {
	deleted, err := h.store.DeleteContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to delete contract", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
