package service

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/nestavo/contracts/backend/model"
)

var tokenPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Reserved structural tokens supplied by the orchestrator.
const (
	tokenContractID = "CONTRACT_ID"
	tokenQRCode     = "QR_CODE"
	tokenWatermark  = "WATERMARK"
)

// SubstitutionContext carries everything RenderMarkup may resolve a token against.
type SubstitutionContext struct {
	ContractID string
	QRCode     string // raw markup, inserted without escaping
	Watermark  string // raw markup, inserted without escaping
	Parties    []model.Party
	Property   *model.PropertySnapshot
	Variables  map[string]string
}

// RenderMarkup replaces every {{TOKEN}} in the markup. Resolution priority:
// reserved structural tokens, then party-derived tokens ({ROLE}_NAME/_EMAIL/_PHONE),
// then property-derived tokens, then caller variables (case-sensitive).
// Unresolved tokens become the empty string; partially filled documents are still
// useful for preview, so this never fails. All resolved values are HTML-escaped
// except QR_CODE and WATERMARK, which are structural markup.
func RenderMarkup(markup string, sc *SubstitutionContext) string {
	return tokenPattern.ReplaceAllStringFunc(markup, func(m string) string {
		key := m[2 : len(m)-2]

		switch key {
		case tokenQRCode:
			return sc.QRCode
		case tokenWatermark:
			return sc.Watermark
		}

		if value, ok := sc.resolve(key); ok {
			return html.EscapeString(value)
		}
		return ""
	})
}

func (sc *SubstitutionContext) resolve(key string) (string, bool) {
	if key == tokenContractID {
		return sc.ContractID, true
	}

	if value, ok := sc.resolveParty(key); ok {
		return value, true
	}
	if value, ok := sc.resolveProperty(key); ok {
		return value, true
	}

	value, ok := sc.Variables[key]
	return value, ok
}

// resolveParty matches tokens of the form {ROLE}_NAME, {ROLE}_EMAIL, {ROLE}_PHONE,
// keyed by the party's role name upper-cased.
func (sc *SubstitutionContext) resolveParty(key string) (string, bool) {
	for i := range sc.Parties {
		p := &sc.Parties[i]
		prefix := strings.ToUpper(string(p.Role)) + "_"
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		switch key[len(prefix):] {
		case "NAME":
			return p.FullName, true
		case "EMAIL":
			return p.Email, true
		case "PHONE":
			return p.Phone, true
		}
	}
	return "", false
}

func (sc *SubstitutionContext) resolveProperty(key string) (string, bool) {
	if sc.Property == nil {
		return "", false
	}
	switch key {
	case "PROPERTY_TITLE":
		return sc.Property.Title, true
	case "PROPERTY_ADDRESS":
		return sc.Property.Address, true
	case "PROPERTY_SURFACE":
		return strconv.FormatFloat(sc.Property.Surface, 'f', -1, 64), true
	case "PROPERTY_ROOMS":
		return strconv.Itoa(sc.Property.Rooms), true
	}
	return "", false
}
