/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package profit derives linear, non-compounding investment returns from elapsed wall-clock time.
package profit

import (
	"time"

	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultDurationDays applies to investments recorded without a duration
const DefaultDurationDays = 30

const day = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// Result is the accrual snapshot of an investment at a point in time
type Result struct {
	CurrentProfit      decimal.Decimal
	DailyProfit        decimal.Decimal
	DaysPassed         int
	DurationInDays     int
	IsCompleted        bool
	ProgressPercentage float64
}

// Calculate returns the profit accrued by inv at now. It reports false when the
// investment has no start date.
func Calculate(inv models.Investment, now time.Time) (*Result, bool) {
	if inv.StartDate == nil || inv.StartDate.IsZero() {
		return nil, false
	}

	duration := inv.Duration
	if duration <= 0 {
		duration = DefaultDurationDays
	}

	daysPassed := DaysBetween(*inv.StartDate, now)
	if daysPassed > duration {
		daysPassed = duration
	}
	if daysPassed < 0 {
		daysPassed = 0
	}

	durationDec := decimal.NewFromInt(int64(duration))
	totalProfit := inv.Amount.Mul(inv.Roi).Div(hundred)

	// Multiply before dividing so a full term yields amount*roi/100 exactly
	currentProfit := totalProfit.Mul(decimal.NewFromInt(int64(daysPassed))).Div(durationDec)
	if currentProfit.IsNegative() {
		currentProfit = decimal.Zero
	}

	progress := float64(daysPassed) / float64(duration) * 100
	if progress > 100 {
		progress = 100
	}

	return &Result{
		CurrentProfit:      currentProfit,
		DailyProfit:        totalProfit.Div(durationDec),
		DaysPassed:         daysPassed,
		DurationInDays:     duration,
		IsCompleted:        daysPassed >= duration,
		ProgressPercentage: progress,
	}, true
}

// DaysBetween counts whole 24h periods from start to now, flooring toward negative infinity.
func DaysBetween(start, now time.Time) int {
	elapsed := now.Sub(start)
	days := int(elapsed / day)
	if elapsed < 0 && elapsed%day != 0 {
		days--
	}
	return days
}
