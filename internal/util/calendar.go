package util

import (
	"time"

	_ "time/tzdata"
)

// NewYork is the exchange timezone for US equities.
var NewYork = mustLoad("America/New_York")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// TradingCalendar answers regular-session questions for US equities
// (NYSE 9:30-16:00 ET, Monday to Friday). Exchange holidays are not modelled.
type TradingCalendar struct {
	loc          *time.Location
	openH, openM int
	closeH       int
}

// NewTradingCalendar creates the US equities calendar.
func NewTradingCalendar() *TradingCalendar {
	return &TradingCalendar{loc: NewYork, openH: 9, openM: 30, closeH: 16}
}

// IsTradingDay reports whether t falls on a weekday in exchange time.
func (tc *TradingCalendar) IsTradingDay(t time.Time) bool {
	wd := t.In(tc.loc).Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func (tc *TradingCalendar) sessionOpen(t time.Time) time.Time {
	y, m, d := t.In(tc.loc).Date()
	return time.Date(y, m, d, tc.openH, tc.openM, 0, 0, tc.loc)
}

func (tc *TradingCalendar) sessionClose(t time.Time) time.Time {
	y, m, d := t.In(tc.loc).Date()
	return time.Date(y, m, d, tc.closeH, 0, 0, 0, tc.loc)
}

// IsMarketOpen returns whether the regular session is open at time t.
func (tc *TradingCalendar) IsMarketOpen(t time.Time) bool {
	if !tc.IsTradingDay(t) {
		return false
	}
	return !t.Before(tc.sessionOpen(t)) && t.Before(tc.sessionClose(t))
}

// NextOpen returns the next session open at or after t.
func (tc *TradingCalendar) NextOpen(t time.Time) time.Time {
	day := t.In(tc.loc)
	for i := 0; i < 8; i++ {
		if tc.IsTradingDay(day) {
			if open := tc.sessionOpen(day); !open.Before(t) {
				return open
			}
		}
		y, m, d := day.Date()
		day = time.Date(y, m, d+1, 0, 0, 0, 0, tc.loc)
	}
	return time.Time{}
}

// NextClose returns the next session close at or after t.
func (tc *TradingCalendar) NextClose(t time.Time) time.Time {
	if tc.IsMarketOpen(t) {
		return tc.sessionClose(t)
	}
	return tc.sessionClose(tc.NextOpen(t))
}

// TradingDaysBack returns midnight exchange time of the day n trading days
// before t.
func (tc *TradingCalendar) TradingDaysBack(t time.Time, n int) time.Time {
	y, m, d := t.In(tc.loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, tc.loc)
	for n > 0 {
		day = time.Date(day.Year(), day.Month(), day.Day()-1, 0, 0, 0, 0, tc.loc)
		if tc.IsTradingDay(day) {
			n--
		}
	}
	return day
}
