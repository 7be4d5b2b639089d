package profit

import (
	"math"
	"testing"
	"time"

	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
)

var start = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func investment(amount, roi int64, duration int) models.Investment {
	s := start
	return models.Investment{
		Id:        "inv-1",
		PlanName:  "Test Plan",
		Amount:    decimal.NewFromInt(amount),
		Roi:       decimal.NewFromInt(roi),
		Duration:  duration,
		StartDate: &s,
		Status:    models.InvestmentActive,
	}
}

func TestCalculate_MidTerm(t *testing.T) {
	result, ok := Calculate(investment(1000, 18, 30), start.Add(10*day))
	if !ok {
		t.Fatalf("Expected a result")
	}

	if !result.DailyProfit.Equal(decimal.NewFromInt(6)) {
		t.Errorf("Expected daily profit 6, got %s", result.DailyProfit)
	}
	if !result.CurrentProfit.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected current profit 60, got %s", result.CurrentProfit)
	}
	if result.DaysPassed != 10 {
		t.Errorf("Expected 10 days passed, got %d", result.DaysPassed)
	}
	if math.Abs(result.ProgressPercentage-33.33) > 0.01 {
		t.Errorf("Expected progress ~33.33, got %f", result.ProgressPercentage)
	}
	if result.IsCompleted {
		t.Errorf("Expected investment to be in progress")
	}
}

func TestCalculate_FullTermIsExact(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		roi      int64
		duration int
		elapsed  time.Duration
	}{
		{"exact end", 1000, 18, 30, 30 * day},
		{"long after end", 1000, 18, 30, 400 * day},
		{"non-terminating daily rate", 100, 12, 7, 7 * day},
		{"odd duration", 2500, 15, 45, 45*day + 3*time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := investment(tt.amount, tt.roi, tt.duration)
			result, ok := Calculate(inv, start.Add(tt.elapsed))
			if !ok {
				t.Fatalf("Expected a result")
			}

			expected := inv.Amount.Mul(inv.Roi).Div(decimal.NewFromInt(100))
			if !result.CurrentProfit.Equal(expected) {
				t.Errorf("Expected profit %s, got %s", expected, result.CurrentProfit)
			}
			if !result.IsCompleted {
				t.Errorf("Expected investment to be completed")
			}
			if result.ProgressPercentage != 100 {
				t.Errorf("Expected progress 100, got %f", result.ProgressPercentage)
			}
			if result.DaysPassed != tt.duration {
				t.Errorf("Expected days passed clamped to %d, got %d", tt.duration, result.DaysPassed)
			}
		})
	}
}

func TestCalculate_PartialDayRoundsDown(t *testing.T) {
	result, ok := Calculate(investment(1000, 18, 30), start.Add(day-time.Second))
	if !ok {
		t.Fatalf("Expected a result")
	}
	if result.DaysPassed != 0 || !result.CurrentProfit.IsZero() {
		t.Errorf("Expected no accrual before one full day, got days=%d profit=%s", result.DaysPassed, result.CurrentProfit)
	}
}

func TestCalculate_FutureStartClampsToZero(t *testing.T) {
	result, ok := Calculate(investment(1000, 18, 30), start.Add(-36*time.Hour))
	if !ok {
		t.Fatalf("Expected a result")
	}
	if result.DaysPassed != 0 {
		t.Errorf("Expected 0 days passed, got %d", result.DaysPassed)
	}
	if !result.CurrentProfit.IsZero() {
		t.Errorf("Expected zero profit, got %s", result.CurrentProfit)
	}
}

func TestCalculate_DefaultDuration(t *testing.T) {
	result, ok := Calculate(investment(300, 10, 0), start.Add(15*day))
	if !ok {
		t.Fatalf("Expected a result")
	}
	if result.DurationInDays != DefaultDurationDays {
		t.Errorf("Expected default duration %d, got %d", DefaultDurationDays, result.DurationInDays)
	}
	if !result.CurrentProfit.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected profit 15, got %s", result.CurrentProfit)
	}
}

func TestCalculate_NoStartDate(t *testing.T) {
	inv := investment(1000, 18, 30)
	inv.StartDate = nil

	if result, ok := Calculate(inv, start); ok || result != nil {
		t.Errorf("Expected no result for investment without start date")
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(start, start.Add(-time.Hour)); got != -1 {
		t.Errorf("Expected -1 for one hour in the past, got %d", got)
	}
	if got := DaysBetween(start, start.Add(48*time.Hour)); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
}
