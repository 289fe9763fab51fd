package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/nestavo/contracts/backend/model"
	"github.com/nestavo/contracts/backend/pkg/logger"
	"github.com/google/uuid"
)

// ContractService orchestrates contract generation, rendering and signing.
// All collaborators are injected; there is no global instance.
type ContractService struct {
	registry      *TemplateRegistry
	store         *ContractStore
	users         UserLookup
	properties    PropertyLookup
	reservations  ReservationLookup
	renderer      Renderer
	annotator     RiskAnnotator
	allowResign   bool
	renderTimeout time.Duration
	callbackSeed  string
}

// ContractServiceOptions bundles the orchestrator's collaborators and policy.
type ContractServiceOptions struct {
	Users        UserLookup
	Properties   PropertyLookup
	Reservations ReservationLookup
	Renderer     Renderer
	Annotator    RiskAnnotator
	// AllowResign lets a party overwrite an existing signature. Off by default:
	// a correction flow has not been confirmed by product, so executed
	// signatures are treated as immutable.
	AllowResign   bool
	RenderTimeout time.Duration
	CallbackSeed  string
}

func NewContractService(registry *TemplateRegistry, store *ContractStore, opts ContractServiceOptions) *ContractService {
	annotator := opts.Annotator
	if annotator == nil {
		annotator = NewPlaceholderAnnotator()
	}
	renderTimeout := opts.RenderTimeout
	if renderTimeout <= 0 {
		renderTimeout = 30 * time.Second
	}

	return &ContractService{
		registry:      registry,
		store:         store,
		users:         opts.Users,
		properties:    opts.Properties,
		reservations:  opts.Reservations,
		renderer:      opts.Renderer,
		annotator:     annotator,
		allowResign:   opts.AllowResign,
		renderTimeout: renderTimeout,
		callbackSeed:  opts.CallbackSeed,
	}
}

// Generate instantiates a contract from a template. Validation runs before any
// external side effect: a request missing required variables never reaches the
// renderer. When AutoGenerate is set and the render fails, the draft stays
// persisted and is returned alongside the render error so the caller can retry.
func (s *ContractService) Generate(ctx context.Context, req *model.GenerationRequest) (*model.ContractData, error) {
	template, err := s.registry.ByID(req.TemplateID)
	if err != nil {
		return nil, err
	}
	if !template.Active {
		return nil, model.ErrTemplateNotFound
	}
	if req.Type != "" && req.Type != template.Type {
		return nil, fmt.Errorf("%w: template %s is not of type %s", model.ErrTemplateNotFound, req.TemplateID, req.Type)
	}

	if missing := missingRequiredKeys(template, req.Variables); len(missing) > 0 {
		return nil, &model.MissingVariablesError{Keys: missing}
	}

	var property *model.PropertySnapshot
	if req.PropertyID != "" {
		property, err = s.properties.LookupProperty(ctx, req.PropertyID)
		if err != nil {
			return nil, err
		}
	}

	var reservation *model.ReservationSnapshot
	if req.ReservationID != "" {
		reservation, err = s.reservations.LookupReservation(ctx, req.ReservationID)
		if err != nil {
			return nil, err
		}
	}

	contractID := uuid.New().String()
	now := time.Now()

	parties := make([]model.Party, 0, len(req.Parties))
	for _, pr := range req.Parties {
		profile, err := s.users.LookupUser(ctx, pr.UserID)
		if err != nil {
			return nil, err
		}
		parties = append(parties, model.Party{
			ID:       model.PartyID(contractID, pr.Role),
			Role:     pr.Role,
			UserID:   pr.UserID,
			FullName: profile.FullName,
			Email:    profile.Email,
			Phone:    profile.Phone,
		})
	}

	variables := make(map[string]string, len(req.Variables))
	for k, v := range req.Variables {
		variables[k] = v
	}

	contract := &model.ContractData{
		ID:          contractID,
		TemplateID:  template.ID,
		Type:        template.Type,
		Status:      model.StatusDraft,
		Parties:     parties,
		Variables:   variables,
		Property:    property,
		Reservation: reservation,
		Risk:        s.annotator.Annotate(template.Type, variables),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(contract); err != nil {
		return nil, err
	}

	logger.Info(ctx, "contract generated",
		"contract_id", contractID,
		"template_id", template.ID,
		"type", template.Type,
		"parties", len(parties),
	)

	if req.AutoGenerate {
		rendered, err := s.RenderToFile(ctx, contractID)
		if err != nil {
			draft, getErr := s.store.Get(contractID)
			if getErr != nil {
				return nil, err
			}
			return draft, err
		}
		return rendered, nil
	}

	return s.store.Get(contractID)
}

// missingRequiredKeys returns required variable keys that are absent or blank,
// in template declaration order.
func missingRequiredKeys(template *model.ContractTemplate, variables map[string]string) []string {
	var missing []string
	for _, key := range template.RequiredKeys() {
		if strings.TrimSpace(variables[key]) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// RenderToFile builds the integrity payloads, runs substitution over the
// template markup and hands the result to the renderer. The whole step runs
// under the contract's exclusive lock; on failure nothing is persisted and the
// contract stays in its previous state, so retrying is safe. The verification
// payload is derived from contract identity and creation time only, which makes
// repeated renders byte-identical.
func (s *ContractService) RenderToFile(ctx context.Context, contractID string) (*model.ContractData, error) {
	return s.store.Update(contractID, func(c *model.ContractData) error {
		template, err := s.registry.ByID(c.TemplateID)
		if err != nil {
			return err
		}

		markup, payload, watermark := s.buildDocument(template, c)

		renderCtx, cancel := context.WithTimeout(ctx, s.renderTimeout)
		defer cancel()

		fileURI, err := s.renderer.Render(renderCtx, c.ID, markup)
		if err != nil {
			logger.Warn(ctx, "contract render failed", "contract_id", c.ID, "error", err)
			return &model.RenderError{Err: err}
		}

		c.GeneratedFileURI = fileURI
		c.QRCodeData = payload
		c.WatermarkData = watermark
		c.Status = c.DeriveStatus()

		logger.Info(ctx, "contract rendered", "contract_id", c.ID, "file_uri", fileURI)
		return nil
	})
}

// buildDocument produces the final markup plus the integrity payloads it embeds.
func (s *ContractService) buildDocument(template *model.ContractTemplate, c *model.ContractData) (markup, payload, watermark string) {
	propertyID := ""
	if c.Property != nil {
		propertyID = c.Property.PropertyID
	}
	counterpartyID := ""
	if p := c.PartyByRoles(model.RoleTenant, model.RoleGuest, model.RoleBuyer); p != nil {
		counterpartyID = p.UserID
	}
	var startDate, endDate time.Time
	if c.Reservation != nil {
		startDate = c.Reservation.StartDate
		endDate = c.Reservation.EndDate
	}

	payload = BuildVerificationPayload(c.ID, propertyID, counterpartyID, startDate, endDate, c.CreatedAt)
	watermark = BuildWatermarkMarkup(c.ID)

	markup = RenderMarkup(template.Markup, &SubstitutionContext{
		ContractID: c.ID,
		QRCode:     BuildQRMarkup(payload),
		Watermark:  watermark,
		Parties:    c.Parties,
		Property:   c.Property,
		Variables:  c.Variables,
	})
	return markup, payload, watermark
}

// Sign applies one party's signature and recomputes the contract status
// atomically with the party update. Signing order does not matter; when the
// last party signs, the contract's signedAt takes that event's timestamp.
func (s *ContractService) Sign(ctx context.Context, req *model.SigningRequest) (*model.ContractData, error) {
	signed, err := s.store.Update(req.ContractID, func(c *model.ContractData) error {
		party := c.FindParty(req.PartyID)
		if party == nil {
			return model.ErrPartyNotFound
		}
		if party.SignedAt != nil && !s.allowResign {
			return model.ErrResignNotAllowed
		}

		signedAt := req.SignedAt
		if signedAt.IsZero() {
			signedAt = time.Now()
		}
		party.SignedAt = &signedAt
		party.Signature = req.Signature
		party.IPAddress = req.IPAddress

		c.Status = c.DeriveStatus()
		if c.Status == model.StatusSigned {
			c.SignedAt = &signedAt
		} else {
			c.SignedAt = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "signature applied",
		"contract_id", req.ContractID,
		"party_id", req.PartyID,
		"status", signed.Status,
	)
	return signed, nil
}

// GetByID returns the contract with the given id.
func (s *ContractService) GetByID(id string) (*model.ContractData, error) {
	return s.store.Get(id)
}

// GetByType returns all contracts of the given type.
func (s *ContractService) GetByType(ct model.ContractType) []*model.ContractData {
	return s.store.GetByType(ct)
}

// ListTemplates returns active templates, optionally filtered by type.
func (s *ContractService) ListTemplates(ct model.ContractType) []*model.ContractTemplate {
	if ct == "" {
		return s.registry.All()
	}
	return s.registry.ByType(ct)
}

// VerifyCallback verifies an e-signature provider callback checksum.
// Checksum = SHA256(contractID + seed + content).
func (s *ContractService) VerifyCallback(checksum, content, contractID string) bool {
	data := contractID + s.callbackSeed + content
	hash := sha256.Sum256([]byte(data))
	expected := hex.EncodeToString(hash[:])
	return checksum == expected
}
