package service

import (
	"html"
	"strconv"
	"strings"
	"time"
)

const verificationSchema = "v1"

// BuildVerificationPayload encodes the contract reference that the renderer
// embeds as a scannable code. Same inputs always produce the same bytes: the
// scanned code must re-derive the same contract reference, and render retries
// must be reproducible. This is a lookup reference, not a cryptographic
// signature.
func BuildVerificationPayload(contractID, propertyID, tenantID string, startDate, endDate, issuedAt time.Time) string {
	fields := []string{
		"nestavo-verify",
		verificationSchema,
		"contract:" + contractID,
		"property:" + propertyID,
		"tenant:" + tenantID,
		"start:" + formatDate(startDate),
		"end:" + formatDate(endDate),
		"issued:" + strconv.FormatInt(issuedAt.UTC().Unix(), 10),
	}
	return strings.Join(fields, "|")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// BuildQRMarkup wraps the verification payload in the markup slot the renderer
// replaces with the actual scannable code.
func BuildQRMarkup(payload string) string {
	return `<div class="contract-qr" data-payload="` + html.EscapeString(payload) + `"></div>`
}

// BuildWatermarkMarkup returns the tiling cosmetic watermark carrying the
// contract id. Purely visual; never used for verification.
func BuildWatermarkMarkup(contractID string) string {
	label := html.EscapeString("NESTAVO " + contractID)

	var b strings.Builder
	b.WriteString(`<div class="contract-watermark" aria-hidden="true">`)
	for i := 0; i < 12; i++ {
		b.WriteString(`<span class="contract-watermark-row">`)
		b.WriteString(label)
		b.WriteString(`</span>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
