package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/invoicer/models"
	"github.com/yourusername/invoicer/store"
)

type ClientHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewClientHandler(st *store.Store, log *zap.Logger) *ClientHandler {
	return &ClientHandler{store: st, logger: log}
}

type ClientRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Address     string `json:"address"`
	Email       string `json:"email" binding:"omitempty,email"`
}

func (r ClientRequest) apply(client *models.Client) {
	client.CompanyName = r.CompanyName
	client.Address = r.Address
	client.Email = r.Email
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.store.ListClients(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, "Failed to list clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.store.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to load client", err)
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client
	req.apply(&client)
	if err := h.store.CreateClient(c.Request.Context(), &client); err != nil {
		internalError(c, h.logger, "Failed to create client", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	client, err := h.store.GetClientByID(ctx, c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to load client", err)
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	req.apply(client)
	if err := h.store.UpdateClient(ctx, client); err != nil {
		internalError(c, h.logger, "Failed to update client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	deleted, err := h.store.DeleteClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to delete client", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) ListClientContracts(c *gin.Context) {
	ctx := c.Request.Context()
	client, err := h.store.GetClientByID(ctx, c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to load client", err)
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	contracts, err := h.store.GetContractsByClientID(ctx, client.ID)
	if err != nil {
		internalError(c, h.logger, "Failed to list contracts", err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}
