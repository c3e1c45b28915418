package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scout/internal/catalog"
)

// Styles.
var (
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	symbolStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	priceStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sparkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	scoreStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// maxEarnings is how many recent quarters the earnings table shows.
const maxEarnings = 4

// Render draws the full dashboard panel for snap at the given width.
func Render(snap *Snapshot, width int) string {
	if snap == nil {
		return ""
	}
	width = max(width, 20)
	var b strings.Builder

	renderHeader(&b, snap)
	b.WriteString("\n")
	renderPrice(&b, snap, width)
	b.WriteString("\n")
	renderMetrics(&b, snap)
	b.WriteString("\n")
	renderEarnings(&b, snap)
	b.WriteString("\n")
	renderSentiment(&b, snap, width)
	b.WriteString("\n")
	renderNews(&b, snap, width)

	return b.String()
}

// Placeholder is shown while the snapshot for entry is still loading.
func Placeholder(entry catalog.Entry, width int) string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(entry.Name))
	b.WriteString("  ")
	b.WriteString(symbolStyle.Render(entry.Symbol))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(padOrTrunc("loading...", max(width, 10))))
	b.WriteString("\n")
	return b.String()
}

func renderHeader(b *strings.Builder, snap *Snapshot) {
	b.WriteString(nameStyle.Render(snap.Entry.Name))
	b.WriteString("  ")
	b.WriteString(symbolStyle.Render(snap.Entry.Symbol))
	if p := snap.Profile; p != nil {
		var parts []string
		for _, s := range []string{p.Exchange, p.Industry, p.Country} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			b.WriteString("  ")
			b.WriteString(dimStyle.Render(strings.Join(parts, " · ")))
		}
	}
	b.WriteString("\n")
}

func renderPrice(b *strings.Builder, snap *Snapshot, width int) {
	b.WriteString(sectionStyle.Render(" PRICE "))
	b.WriteString("\n")
	if snap.Failed(SectionBars) || len(snap.Bars) == 0 {
		b.WriteString(unavailable(snap, SectionBars))
		return
	}
	s := snap.Stats
	b.WriteString(priceStyle.Render(FormatPrice(s.Close)))
	if s.PrevClose > 0 {
		b.WriteString("  ")
		change := FormatChange(s.Change(), s.ChangeFrac())
		if s.Change() < 0 {
			b.WriteString(lossStyle.Render(change))
		} else {
			b.WriteString(gainStyle.Render(change))
		}
	}
	b.WriteString("\n")
	b.WriteString(sparkStyle.Render(Sparkline(Closes(snap.Bars), width)))
	b.WriteString("\n")
	fmt.Fprintf(b, "%s %s  %s %s  %s %s  %s %s\n",
		labelStyle.Render(fmt.Sprintf("%dd high", s.Days)), FormatPrice(s.High),
		labelStyle.Render("low"), FormatPrice(s.Low),
		labelStyle.Render("vol"), FormatNumber(float64(s.Volume)),
		labelStyle.Render("best run"), gainStyle.Render(FormatGain(s.MaxGain)),
	)
}

func renderMetrics(b *strings.Builder, snap *Snapshot) {
	b.WriteString(sectionStyle.Render(" METRICS "))
	b.WriteString("\n")
	m := snap.Metrics
	if m == nil {
		b.WriteString(unavailable(snap, SectionMetrics))
		return
	}
	rows := [][2]string{
		{"P/E Ratio", orNA(m.PERatio, func(v float64) string { return fmt.Sprintf("%.2f", v) })},
		{"52W High", FormatPrice(m.WeekHigh52)},
		{"52W Low", FormatPrice(m.WeekLow52)},
		{"Gross Margin", FormatPercent(m.GrossMargin)},
		{"10D Avg Volume", orNA(m.Volume10Day, FormatNumber)},
		{"Market Cap", orNA(m.MarketCap, FormatNumber)},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(padOrTrunc(r[0], 16)))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
}

func renderEarnings(b *strings.Builder, snap *Snapshot) {
	b.WriteString(sectionStyle.Render(" EARNINGS "))
	b.WriteString("\n")
	if snap.Failed(SectionEarnings) || len(snap.Earnings) == 0 {
		b.WriteString(unavailable(snap, SectionEarnings))
		return
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s %9s %9s %9s", "Quarter", "Estimate", "Actual", "Surprise")))
	b.WriteString("\n")
	recent := snap.Earnings
	if len(recent) > maxEarnings {
		recent = recent[len(recent)-maxEarnings:]
	}
	for _, e := range recent {
		surprise := fmt.Sprintf("%+.2f%%", e.SurprisePercent)
		style := gainStyle
		if e.Actual < e.Estimate {
			style = lossStyle
		}
		fmt.Fprintf(b, "%-10s %9.2f %9.2f %s\n", e.Label(), e.Estimate, e.Actual,
			style.Render(fmt.Sprintf("%9s", surprise)))
	}
}

func renderSentiment(b *strings.Builder, snap *Snapshot, width int) {
	b.WriteString(sectionStyle.Render(" SENTIMENT "))
	b.WriteString("\n")
	s := snap.Sentiment
	if s == nil {
		b.WriteString(unavailable(snap, SectionSentiment))
		return
	}
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%.1f/10", s.Score)))
	b.WriteString("\n")
	for _, bullet := range s.Bullets {
		b.WriteString("• ")
		b.WriteString(padOrTrunc(bullet, width-2))
		b.WriteString("\n")
	}
}

func renderNews(b *strings.Builder, snap *Snapshot, width int) {
	b.WriteString(sectionStyle.Render(" NEWS "))
	b.WriteString("\n")
	if snap.Failed(SectionNews) || len(snap.News) == 0 {
		b.WriteString(unavailable(snap, SectionNews))
		return
	}
	for _, a := range snap.News {
		prefix := a.Time.Format("Jan 02") + " "
		b.WriteString(dimStyle.Render(prefix))
		b.WriteString(padOrTrunc(a.Headline, width-len(prefix)))
		b.WriteString("\n")
	}
}

func unavailable(snap *Snapshot, section string) string {
	if msg, ok := snap.Errors[section]; ok {
		return dimStyle.Render("unavailable: "+msg) + "\n"
	}
	return dimStyle.Render("no data") + "\n"
}

func orNA(v float64, f func(float64) string) string {
	if v == 0 {
		return "N/A"
	}
	return f(v)
}

// padOrTrunc pads s with spaces to width, or truncates if longer.
func padOrTrunc(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
