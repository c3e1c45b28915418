package dashboard

import (
	"fmt"
	"math"
	"strings"
)

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	start := len(s) % 3
	if start > 0 {
		b.WriteString(s[:start])
	}
	for i := start; i < len(s); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatNumber abbreviates large values with T/B/M/K suffixes and two
// decimals, e.g. 2.85T or 41.20M. Values below a thousand keep two decimals.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	a := math.Abs(v)
	switch {
	case a >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case a >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case a >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case a >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatPrice formats a price value as $X.XX, or "-" for zero/max.
func FormatPrice(p float64) string {
	if p == math.MaxFloat64 || p == 0 {
		return "-"
	}
	return fmt.Sprintf("$%.2f", p)
}

// FormatChange formats an absolute and fractional change, e.g. "+1.25 (+0.8%)".
func FormatChange(abs, frac float64) string {
	sign := "+"
	if abs < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.2f (%s%.1f%%)", sign, math.Abs(abs), sign, math.Abs(frac)*100)
}

// FormatPercent formats a value already in percent, or "N/A" when zero.
func FormatPercent(p float64) string {
	if p == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", p)
}

// FormatGain formats a gain fraction as "+X.X%", or "" if zero.
// Drops decimal for values >= 100% to keep width compact.
func FormatGain(g float64) string {
	if g <= 0 {
		return ""
	}
	pct := g * 100
	if pct >= 100 {
		return fmt.Sprintf("+%.0f%%", pct)
	}
	return fmt.Sprintf("+%.1f%%", pct)
}

// FormatLoss formats a loss fraction as "-X.X%", or "" if zero.
func FormatLoss(l float64) string {
	if l <= 0 {
		return ""
	}
	pct := l * 100
	if pct >= 100 {
		return fmt.Sprintf("-%.0f%%", pct)
	}
	return fmt.Sprintf("-%.1f%%", pct)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a unicode block chart at most width runes wide,
// sampling evenly when there are more values than columns.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		sampled := make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*(len(values)-1)/max(width-1, 1)]
		}
		values = sampled
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
