package model

import "time"

// PartyRequest names one signer to attach to a new contract.
type PartyRequest struct {
	Role   PartyRole `json:"role" binding:"required"`
	UserID string    `json:"user_id" binding:"required"`
}

// GenerationRequest asks the orchestrator to instantiate a contract from a template.
type GenerationRequest struct {
	TemplateID    string            `json:"template_id" binding:"required"`
	Type          ContractType      `json:"type"`
	Parties       []PartyRequest    `json:"parties" binding:"required"`
	Variables     map[string]string `json:"variables"`
	PropertyID    string            `json:"property_id"`
	ReservationID string            `json:"reservation_id"`
	AutoGenerate  bool              `json:"auto_generate"`
}

// SigningRequest applies one party's signature to a contract.
type SigningRequest struct {
	ContractID string    `json:"contract_id"`
	PartyID    string    `json:"party_id" binding:"required"`
	SignedAt   time.Time `json:"signed_at"`
	Signature  string    `json:"signature"`
	IPAddress  string    `json:"ip_address"`
}
