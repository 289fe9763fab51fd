package service

import (
	"strings"
	"testing"
	"time"
)

func TestBuildVerificationPayload(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 8, 31, 0, 0, 0, 0, time.UTC)
	issued := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

	payload := BuildVerificationPayload("c-1", "p-1", "u-2", start, end, issued)

	expected := "nestavo-verify|v1|contract:c-1|property:p-1|tenant:u-2|start:2026-09-01|end:2027-08-31|issued:1786789800"
	if payload != expected {
		t.Errorf("Expected payload\n%s\ngot\n%s", expected, payload)
	}
}

func TestBuildVerificationPayloadDeterministic(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 8, 31, 0, 0, 0, 0, time.UTC)
	issued := time.Now()

	first := BuildVerificationPayload("c-1", "p-1", "u-2", start, end, issued)
	second := BuildVerificationPayload("c-1", "p-1", "u-2", start, end, issued)
	if first != second {
		t.Error("Same inputs must produce byte-identical payloads")
	}
}

func TestBuildVerificationPayloadZeroDates(t *testing.T) {
	payload := BuildVerificationPayload("c-1", "", "", time.Time{}, time.Time{}, time.Unix(0, 0))

	if !strings.Contains(payload, "start:|") {
		t.Errorf("Expected empty start date field, got %s", payload)
	}
	if !strings.Contains(payload, "|end:|") {
		t.Errorf("Expected empty end date field, got %s", payload)
	}
}

func TestBuildQRMarkupEscapesPayload(t *testing.T) {
	markup := BuildQRMarkup(`a"b&c`)
	if strings.Contains(markup, `a"b`) {
		t.Errorf("Payload must be attribute-escaped, got %s", markup)
	}
	if !strings.Contains(markup, "contract-qr") {
		t.Errorf("Expected qr container class, got %s", markup)
	}
}

func TestBuildWatermarkMarkup(t *testing.T) {
	markup := BuildWatermarkMarkup("c-123")

	if !strings.Contains(markup, "c-123") {
		t.Error("Watermark must contain the contract id")
	}
	if count := strings.Count(markup, "contract-watermark-row"); count != 12 {
		t.Errorf("Expected 12 watermark rows, got %d", count)
	}

	// Deterministic
	if markup != BuildWatermarkMarkup("c-123") {
		t.Error("Watermark markup must be deterministic")
	}
}
