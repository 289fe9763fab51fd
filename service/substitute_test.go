package service

import (
	"strings"
	"testing"

	"github.com/nestavo/contracts/backend/model"
)

func TestRenderMarkupReservedTokens(t *testing.T) {
	sc := &SubstitutionContext{
		ContractID: "c-123",
		QRCode:     `<div class="qr"></div>`,
		Watermark:  `<div class="wm"></div>`,
	}

	out := RenderMarkup("{{CONTRACT_ID}} {{QR_CODE}} {{WATERMARK}}", sc)
	expected := `c-123 <div class="qr"></div> <div class="wm"></div>`
	if out != expected {
		t.Errorf("Expected '%s', got '%s'", expected, out)
	}
}

func TestRenderMarkupPartyTokens(t *testing.T) {
	sc := &SubstitutionContext{
		Parties: []model.Party{
			{Role: model.RoleLandlord, FullName: "Marie Dupont", Email: "marie@example.com", Phone: "0601020304"},
			{Role: model.RoleTenant, FullName: "Paul Martin", Email: "paul@example.com", Phone: "0605060708"},
		},
	}

	out := RenderMarkup("{{LANDLORD_NAME}} / {{TENANT_EMAIL}} / {{TENANT_PHONE}}", sc)
	if out != "Marie Dupont / paul@example.com / 0605060708" {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestRenderMarkupPropertyTokens(t *testing.T) {
	sc := &SubstitutionContext{
		Property: &model.PropertySnapshot{
			Title:   "T3 lumineux",
			Address: "12 rue des Lilas, Lyon",
			Surface: 64.5,
			Rooms:   3,
		},
	}

	out := RenderMarkup("{{PROPERTY_TITLE}}, {{PROPERTY_ADDRESS}}, {{PROPERTY_SURFACE}} m2, {{PROPERTY_ROOMS}} rooms", sc)
	if out != "T3 lumineux, 12 rue des Lilas, Lyon, 64.5 m2, 3 rooms" {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestRenderMarkupPropertyTokensWithoutSnapshot(t *testing.T) {
	out := RenderMarkup("[{{PROPERTY_TITLE}}]", &SubstitutionContext{})
	if out != "[]" {
		t.Errorf("Expected property token to resolve empty without a snapshot, got '%s'", out)
	}
}

func TestRenderMarkupCallerVariables(t *testing.T) {
	sc := &SubstitutionContext{
		Variables: map[string]string{"monthlyRent": "950", "startDate": "2026-09-01"},
	}

	out := RenderMarkup("Rent: {{monthlyRent}} from {{startDate}}", sc)
	if out != "Rent: 950 from 2026-09-01" {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestRenderMarkupCaseSensitiveVariables(t *testing.T) {
	sc := &SubstitutionContext{
		Variables: map[string]string{"monthlyRent": "950"},
	}

	out := RenderMarkup("[{{MONTHLYRENT}}]", sc)
	if out != "[]" {
		t.Errorf("Expected case-sensitive match to fail, got '%s'", out)
	}
}

func TestRenderMarkupUnresolvedTokenBecomesEmpty(t *testing.T) {
	out := RenderMarkup("before [{{UNKNOWN_TOKEN}}] after", &SubstitutionContext{})
	if out != "before [] after" {
		t.Errorf("Expected unresolved token to become empty, got '%s'", out)
	}
	if strings.Contains(out, "{{") {
		t.Error("No token may be left verbatim")
	}
}

func TestRenderMarkupEscapesValues(t *testing.T) {
	sc := &SubstitutionContext{
		Parties: []model.Party{
			{Role: model.RoleTenant, FullName: `<script>alert("x")</script>`},
		},
		Variables: map[string]string{"note": `a & b < c`},
	}

	out := RenderMarkup("{{TENANT_NAME}} {{note}}", sc)
	if strings.Contains(out, "<script>") {
		t.Error("Party values must be HTML-escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("Expected escaped script tag, got '%s'", out)
	}
	if !strings.Contains(out, "a &amp; b &lt; c") {
		t.Errorf("Expected escaped variable value, got '%s'", out)
	}
}

func TestRenderMarkupStructuralTokensStayRaw(t *testing.T) {
	sc := &SubstitutionContext{
		QRCode:    `<div data-payload="x&amp;y"></div>`,
		Watermark: `<div class="wm"><span>W</span></div>`,
	}

	out := RenderMarkup("{{QR_CODE}}{{WATERMARK}}", sc)
	if out != `<div data-payload="x&amp;y"></div><div class="wm"><span>W</span></div>` {
		t.Errorf("Structural tokens must be inserted without escaping, got '%s'", out)
	}
}

func TestRenderMarkupPriorityOverCallerVariables(t *testing.T) {
	// A caller variable must not shadow a party-derived or reserved token.
	sc := &SubstitutionContext{
		ContractID: "real-id",
		Parties: []model.Party{
			{Role: model.RoleTenant, FullName: "Paul Martin"},
		},
		Variables: map[string]string{
			"CONTRACT_ID": "spoofed-id",
			"TENANT_NAME": "Spoofed Name",
		},
	}

	out := RenderMarkup("{{CONTRACT_ID}} {{TENANT_NAME}}", sc)
	if out != "real-id Paul Martin" {
		t.Errorf("Expected reserved and party tokens to win, got '%s'", out)
	}
}

func TestRenderMarkupDeterministic(t *testing.T) {
	sc := &SubstitutionContext{
		ContractID: "c-1",
		Parties:    []model.Party{{Role: model.RoleTenant, FullName: "Paul"}},
		Variables:  map[string]string{"monthlyRent": "950"},
	}
	markup := "{{CONTRACT_ID}}/{{TENANT_NAME}}/{{monthlyRent}}"

	first := RenderMarkup(markup, sc)
	second := RenderMarkup(markup, sc)
	if first != second {
		t.Error("RenderMarkup must be deterministic for identical inputs")
	}
}
