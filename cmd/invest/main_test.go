package main

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseInvestment_NoAmount(t *testing.T) {
	in, err := parseInvestment("", "0", "", "", 0)
	if err != nil || in != nil {
		t.Fatalf("Expected no investment without --amount, got %+v, %v", in, err)
	}
}

func TestParseInvestment_Valid(t *testing.T) {
	in, err := parseInvestment("250.50", "12", "Starter", "", 45)
	if err != nil {
		t.Fatalf("parseInvestment failed: %v", err)
	}
	if !in.Amount.Equal(decimal.RequireFromString("250.50")) || !in.Roi.Equal(decimal.NewFromInt(12)) {
		t.Errorf("Unexpected amounts: %s %s", in.Amount, in.Roi)
	}
	if in.PlanName != "Starter" || in.Duration != 45 {
		t.Errorf("Unexpected input: %+v", in)
	}
}

func TestParseInvestment_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		roi    string
		plan   string
		asset  string
	}{
		{"bad amount", "ten", "0", "Starter", ""},
		{"zero amount", "0", "0", "Starter", ""},
		{"bad roi", "100", "high", "Starter", ""},
		{"no plan or asset", "100", "5", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseInvestment(tc.amount, tc.roi, tc.plan, tc.asset, 30); err == nil {
				t.Errorf("Expected error")
			}
		})
	}
}
