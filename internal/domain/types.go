// Package domain defines the market data types shared by the providers, the
// dashboard and the HTTP API.
package domain

import (
	"strconv"
	"time"
)

// Bar is one OHLCV bar.
type Bar struct {
	Symbol     string    `json:"symbol"`
	Timestamp  time.Time `json:"timestamp"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Close      float64   `json:"close"`
	Volume     int64     `json:"volume"`
	TradeCount int64     `json:"trade_count"`
	VWAP       float64   `json:"vwap"`
}

// Earning is one reported quarter: expected versus actual EPS.
type Earning struct {
	Symbol          string  `json:"symbol"`
	Period          string  `json:"period"` // YYYY-MM-DD fiscal period end
	Year            int     `json:"year"`
	Quarter         int     `json:"quarter"`
	Estimate        float64 `json:"estimate"`
	Actual          float64 `json:"actual"`
	Surprise        float64 `json:"surprise"`
	SurprisePercent float64 `json:"surprise_percent"`
}

// Label returns the short quarter label, e.g. "Q3 2024".
func (e Earning) Label() string {
	if e.Quarter == 0 || e.Year == 0 {
		return e.Period
	}
	return "Q" + strconv.Itoa(e.Quarter) + " " + strconv.Itoa(e.Year)
}

// Metrics holds the headline company ratios.
type Metrics struct {
	PERatio     float64 `json:"pe_ratio"`
	WeekHigh52  float64 `json:"week_high_52"`
	WeekLow52   float64 `json:"week_low_52"`
	GrossMargin float64 `json:"gross_margin"` // percent
	Volume10Day float64 `json:"volume_10_day"`
	MarketCap   float64 `json:"market_cap"`
	Beta        float64 `json:"beta"`
}

// Profile is the company profile.
type Profile struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
	Industry string `json:"industry"`
	Logo     string `json:"logo"`
	WebURL   string `json:"web_url"`
	Country  string `json:"country"`
}

// Article is a single news article from any source.
type Article struct {
	Time     time.Time `json:"time"`
	Source   string    `json:"source"`
	Headline string    `json:"headline"`
	Content  string    `json:"content,omitempty"`
	URL      string    `json:"url,omitempty"`
}

// Sentiment is an LLM reading of recent headlines.
type Sentiment struct {
	Score   float64  `json:"score"` // 0-10
	Bullets []string `json:"bullets"`
	Raw     string   `json:"raw,omitempty"`
}
