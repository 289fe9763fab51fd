package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nestavo/contracts/backend/model"
	"github.com/nestavo/contracts/backend/service"
)

type ContractHandler struct {
	contracts *service.ContractService
}

func NewContractHandler(contracts *service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// Generate creates a contract from a template
func (h *ContractHandler) Generate(c *gin.Context) {
	var req model.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	contract, err := h.contracts.Generate(c.Request.Context(), &req)
	if err != nil {
		// AutoGenerate render failures keep the draft; surface both
		var renderErr *model.RenderError
		if errors.As(err, &renderErr) && contract != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":    "Contract created but rendering failed: " + renderErr.Error(),
				"contract": contract,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// Render produces the contract document and stores it
func (h *ContractHandler) Render(c *gin.Context) {
	id := c.Param("id")

	contract, err := h.contracts.RenderToFile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// Sign applies a party's signature to a contract
func (h *ContractHandler) Sign(c *gin.Context) {
	var req model.SigningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ContractID = c.Param("id")

	contract, err := h.contracts.Sign(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// Get returns a single contract
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contracts.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// List returns contracts filtered by type
func (h *ContractHandler) List(c *gin.Context) {
	contractType := model.ContractType(c.Query("type"))
	if contractType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'type' is required"})
		return
	}

	contracts := h.contracts.GetByType(contractType)

	result := make([]gin.H, len(contracts))
	for i, contract := range contracts {
		result[i] = gin.H{
			"id":         contract.ID,
			"type":       contract.Type,
			"status":     contract.Status,
			"file_uri":   contract.GeneratedFileURI,
			"parties":    len(contract.Parties),
			"created_at": contract.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at": contract.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"contracts": result})
}

// ListTemplates returns available templates, optionally filtered by type
func (h *ContractHandler) ListTemplates(c *gin.Context) {
	templates := h.contracts.ListTemplates(model.ContractType(c.Query("type")))
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	var missing *model.MissingVariablesError
	var renderErr *model.RenderError

	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "Missing required variables",
			"missing_keys": missing.Keys,
		})
	case errors.Is(err, model.ErrTemplateNotFound),
		errors.Is(err, model.ErrContractNotFound),
		errors.Is(err, model.ErrPartyNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrPropertyNotFound),
		errors.Is(err, model.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrResignNotAllowed),
		errors.Is(err, model.ErrDuplicateContractID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &renderErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
