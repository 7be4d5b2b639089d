package common

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":       "0.00",
		"60":      "60.00",
		"33.3333": "33.33",
	}
	for in, want := range cases {
		if got := FormatAmount(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatAmount(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(nil); got != "-" {
		t.Errorf("Expected - for nil time, got %s", got)
	}
	ts := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	if got := FormatTime(&ts); got != "2026-03-04 05:06" {
		t.Errorf("Unexpected formatted time: %s", got)
	}
}

func TestShortIdAndColorStatus(t *testing.T) {
	if got := ShortId("0123456789abcdef"); got != "01234567" {
		t.Errorf("Unexpected short id: %s", got)
	}
	if got := ShortId("abc"); got != "abc" {
		t.Errorf("Short ids must be returned unchanged, got %s", got)
	}
	if got := ColorStatus("approved"); !strings.Contains(got, "approved") || !strings.HasPrefix(got, colorGreen) {
		t.Errorf("Expected green approved status, got %q", got)
	}
}
