package main

import (
	"testing"

	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
)

func TestParseAssetUpdate_OnlySetFields(t *testing.T) {
	upd, err := parseAssetUpdate(&adminFlags{roi: "12.5", duration: -1})
	if err != nil {
		t.Fatalf("parseAssetUpdate failed: %v", err)
	}
	if upd.Roi == nil || !upd.Roi.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Expected roi 12.5, got %v", upd.Roi)
	}
	if upd.MinAmount != nil || upd.MaxAmount != nil || upd.Name != nil || upd.Duration != nil {
		t.Error("Expected unset fields to stay nil")
	}
}

func TestParseAssetUpdate_InvalidDecimal(t *testing.T) {
	if _, err := parseAssetUpdate(&adminFlags{maxAmount: "lots", duration: -1}); err == nil {
		t.Fatal("Expected error for invalid --max")
	}
}

func TestParseAssetInput_Defaults(t *testing.T) {
	in, err := parseAssetInput(&adminFlags{addAsset: "Gold Fund", minAmount: "50", duration: 90})
	if err != nil {
		t.Fatalf("parseAssetInput failed: %v", err)
	}
	if in.Name != "Gold Fund" || in.Duration != 90 {
		t.Errorf("Unexpected input: %+v", in)
	}
	if !in.MinAmount.Equal(decimal.NewFromInt(50)) || !in.Roi.IsZero() || !in.MaxAmount.IsZero() {
		t.Errorf("Unexpected amounts: roi=%s min=%s max=%s", in.Roi, in.MinAmount, in.MaxAmount)
	}
}

func TestPrintResult_FailureReturnsError(t *testing.T) {
	err := printResult("DEPOSIT APPROVED", &models.OperationResult{
		Success:   false,
		ErrorKind: "not_found",
		Error:     "deposit not found",
	})
	if err == nil {
		t.Fatal("Expected error for failed result")
	}
	if err := printResult("DEPOSIT APPROVED", &models.OperationResult{Success: true, RecordId: "d1"}); err != nil {
		t.Errorf("Expected no error for successful result, got %v", err)
	}
}
