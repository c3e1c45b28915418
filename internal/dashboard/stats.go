// Package dashboard assembles and renders the per-stock panel shown for each
// reel: price history, earnings, metrics, news and sentiment.
package dashboard

import (
	"math"
	"sort"

	"scout/internal/domain"
)

// PriceStats summarizes a window of daily bars for one symbol.
type PriceStats struct {
	Symbol    string  `json:"symbol"`
	Days      int     `json:"days"`
	Open      float64 `json:"open"`       // first bar open
	Close     float64 `json:"close"`      // last bar close
	PrevClose float64 `json:"prev_close"` // close of the bar before the last
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Volume    int64   `json:"volume"`   // last bar volume
	Turnover  float64 `json:"turnover"` // sum(close * volume) across the window
	MaxGain   float64 `json:"max_gain"` // best buy-then-sell return over the window
	MaxLoss   float64 `json:"max_loss"` // worst buy-then-sell drawdown over the window
}

// Change returns the last close minus the previous close.
func (s PriceStats) Change() float64 {
	if s.PrevClose == 0 {
		return 0
	}
	return s.Close - s.PrevClose
}

// ChangeFrac returns Change as a fraction of the previous close.
func (s PriceStats) ChangeFrac() float64 {
	if s.PrevClose == 0 {
		return 0
	}
	return (s.Close - s.PrevClose) / s.PrevClose
}

// AggregateBars computes statistics from daily bars. Bars are sorted by
// timestamp first so max gain/loss respects time order.
func AggregateBars(bars []domain.Bar) PriceStats {
	if len(bars) == 0 {
		return PriceStats{}
	}
	sorted := make([]domain.Bar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	s := PriceStats{
		Symbol: sorted[0].Symbol,
		Days:   len(sorted),
		Open:   sorted[0].Open,
		Low:    math.MaxFloat64,
	}
	minPrice := math.MaxFloat64
	maxPrice := 0.0

	for i, b := range sorted {
		s.Turnover += b.Close * float64(b.Volume)
		s.High = max(s.High, b.High)
		if b.Low > 0 {
			s.Low = min(s.Low, b.Low)
		}
		if i == len(sorted)-2 {
			s.PrevClose = b.Close
		}
		s.Close = b.Close
		s.Volume = b.Volume

		// Max gain: buy at the lowest close so far, sell now.
		minPrice = min(minPrice, b.Close)
		if minPrice > 0 {
			s.MaxGain = max(s.MaxGain, (b.Close-minPrice)/minPrice)
		}
		// Max loss: buy at the highest close so far, sell now.
		maxPrice = max(maxPrice, b.Close)
		if b.Close > 0 {
			s.MaxLoss = max(s.MaxLoss, (maxPrice-b.Close)/b.Close)
		}
	}
	if s.Low == math.MaxFloat64 {
		s.Low = 0
	}
	return s
}

// Closes returns the closing prices in bar order.
func Closes(bars []domain.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
