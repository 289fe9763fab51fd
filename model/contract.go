package model

import (
	"time"
)

// ContractStatus constants
const (
	StatusDraft            = "draft"
	StatusGenerated        = "generated"
	StatusPendingSignature = "pending_signature"
	StatusSigned           = "signed"
)

// PartyRole identifies a signer role on a contract.
type PartyRole string

const (
	RoleLandlord PartyRole = "landlord"
	RoleTenant   PartyRole = "tenant"
	RoleBuyer    PartyRole = "buyer"
	RoleSeller   PartyRole = "seller"
	RoleHost     PartyRole = "host"
	RoleGuest    PartyRole = "guest"
)

// Party is one signer attached to a contract with its own signature state.
// Profile fields are resolved from the directory at generation time.
type Party struct {
	ID        string     `json:"id"`
	Role      PartyRole  `json:"role"`
	UserID    string     `json:"user_id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	Signature string     `json:"signature,omitempty"`
	IPAddress string     `json:"ip_address,omitempty"`
}

// PartyID derives the stable party identifier from contract id and role.
func PartyID(contractID string, role PartyRole) string {
	return contractID + ":" + string(role)
}

// PropertySnapshot freezes the property attributes a contract was generated against.
type PropertySnapshot struct {
	PropertyID string  `json:"property_id"`
	Title      string  `json:"title"`
	Address    string  `json:"address"`
	Surface    float64 `json:"surface"`
	Rooms      int     `json:"rooms"`
}

// ReservationSnapshot freezes the reservation attributes a contract was generated against.
type ReservationSnapshot struct {
	ReservationID string    `json:"reservation_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	MonthlyRent   float64   `json:"monthly_rent"`
}

// RiskAnalysis holds the advisory scores attached at generation time.
type RiskAnalysis struct {
	RiskScore       int      `json:"risk_score"`
	ComplianceScore int      `json:"compliance_score"`
	MarketAnalysis  string   `json:"market_analysis"`
	Recommendations []string `json:"recommendations"`
}

// ContractData is one instantiated legal document plus its lifecycle state.
type ContractData struct {
	ID               string               `json:"id"`
	TemplateID       string               `json:"template_id"`
	Type             ContractType         `json:"type"`
	Status           string               `json:"status"`
	Parties          []Party              `json:"parties"`
	Variables        map[string]string    `json:"variables"`
	Property         *PropertySnapshot    `json:"property,omitempty"`
	Reservation      *ReservationSnapshot `json:"reservation,omitempty"`
	Risk             *RiskAnalysis        `json:"risk_analysis,omitempty"`
	QRCodeData       string               `json:"qr_code_data,omitempty"`
	WatermarkData    string               `json:"watermark_data,omitempty"`
	GeneratedFileURI string               `json:"generated_file_uri,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	SignedAt         *time.Time           `json:"signed_at,omitempty"`
}

// DeriveStatus recomputes the lifecycle status from the party set.
// Signed holds exactly when every party has a signature timestamp.
func (c *ContractData) DeriveStatus() string {
	signed := 0
	for i := range c.Parties {
		if c.Parties[i].SignedAt != nil {
			signed++
		}
	}

	switch {
	case len(c.Parties) > 0 && signed == len(c.Parties):
		return StatusSigned
	case c.GeneratedFileURI != "" && signed > 0:
		return StatusPendingSignature
	case c.GeneratedFileURI != "":
		return StatusGenerated
	default:
		return StatusDraft
	}
}

// FindParty returns the party with the given id, or nil.
func (c *ContractData) FindParty(partyID string) *Party {
	for i := range c.Parties {
		if c.Parties[i].ID == partyID {
			return &c.Parties[i]
		}
	}
	return nil
}

// PartyByRoles returns the first party matching any of the given roles, in role order.
func (c *ContractData) PartyByRoles(roles ...PartyRole) *Party {
	for _, role := range roles {
		for i := range c.Parties {
			if c.Parties[i].Role == role {
				return &c.Parties[i]
			}
		}
	}
	return nil
}

// Clone returns a deep copy so stored contracts cannot be mutated through reads.
func (c *ContractData) Clone() *ContractData {
	out := *c

	out.Parties = make([]Party, len(c.Parties))
	copy(out.Parties, c.Parties)
	for i := range out.Parties {
		if c.Parties[i].SignedAt != nil {
			ts := *c.Parties[i].SignedAt
			out.Parties[i].SignedAt = &ts
		}
	}

	if c.Variables != nil {
		out.Variables = make(map[string]string, len(c.Variables))
		for k, v := range c.Variables {
			out.Variables[k] = v
		}
	}
	if c.Property != nil {
		p := *c.Property
		out.Property = &p
	}
	if c.Reservation != nil {
		r := *c.Reservation
		out.Reservation = &r
	}
	if c.Risk != nil {
		risk := *c.Risk
		risk.Recommendations = make([]string, len(c.Risk.Recommendations))
		copy(risk.Recommendations, c.Risk.Recommendations)
		out.Risk = &risk
	}
	if c.SignedAt != nil {
		ts := *c.SignedAt
		out.SignedAt = &ts
	}

	return &out
}
