package domain

import (
	"testing"
	"time"
)

func TestTypesExist(t *testing.T) {
	bar := Bar{}
	if bar.Symbol != "" {
		t.Error("expected empty Symbol for zero-value Bar")
	}
	if !bar.Timestamp.IsZero() {
		t.Error("expected zero Timestamp for zero-value Bar")
	}
	if bar.Open != 0 || bar.High != 0 || bar.Low != 0 || bar.Close != 0 {
		t.Error("expected zero OHLC values for zero-value Bar")
	}

	a := Article{Time: time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC), Source: "google", Headline: "h"}
	if a.Time.Year() != 2025 || a.Source != "google" {
		t.Errorf("unexpected article %+v", a)
	}

	var s Sentiment
	if s.Score != 0 || s.Bullets != nil {
		t.Error("expected zero-value Sentiment")
	}
}

func TestEarningLabel(t *testing.T) {
	tests := []struct {
		e    Earning
		want string
	}{
		{Earning{Year: 2024, Quarter: 3, Period: "2024-09-30"}, "Q3 2024"},
		{Earning{Period: "2024-09-30"}, "2024-09-30"},
		{Earning{Year: 2024, Period: "2024-12-31"}, "2024-12-31"},
	}
	for _, tt := range tests {
		if got := tt.e.Label(); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.e, got, tt.want)
		}
	}
}
