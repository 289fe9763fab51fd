package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nestavo/contracts/backend/model"
	"github.com/nestavo/contracts/backend/pkg/logger"
	"github.com/nestavo/contracts/backend/service"
)

type CallbackHandler struct {
	contracts *service.ContractService
}

func NewCallbackHandler(contracts *service.ContractService) *CallbackHandler {
	return &CallbackHandler{contracts: contracts}
}

type CallbackRequest struct {
	Checksum string `json:"checksum"`
	Content  string `json:"content"`
}

type CallbackContent struct {
	ContractID string    `json:"contract_id"`
	PartyID    string    `json:"party_id"`
	State      string    `json:"state"`
	SignedAt   time.Time `json:"signed_at"`
	Signature  string    `json:"signature"`
	IPAddress  string    `json:"ip_address"`
}

// HandleCallback receives signature events from the e-signature provider
func (h *CallbackHandler) HandleCallback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Parse content
	var content CallbackContent
	if err := json.Unmarshal([]byte(req.Content), &content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content format"})
		return
	}

	// Reject tampered payloads before touching any contract
	if !h.contracts.VerifyCallback(req.Checksum, req.Content, content.ContractID) {
		logger.Warn(c.Request.Context(), "callback checksum mismatch", "contract_id", content.ContractID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Checksum verification failed"})
		return
	}

	switch content.State {
	case "signed":
		_, err := h.contracts.Sign(c.Request.Context(), &model.SigningRequest{
			ContractID: content.ContractID,
			PartyID:    content.PartyID,
			SignedAt:   content.SignedAt,
			Signature:  content.Signature,
			IPAddress:  content.IPAddress,
		})
		if err != nil {
			respondError(c, err)
			return
		}
	case "declined":
		logger.Info(c.Request.Context(), "signature declined by party",
			"contract_id", content.ContractID,
			"party_id", content.PartyID,
		)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown callback state: " + content.State})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Callback received"})
}
