package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/entity"
)

const (
	defaultBatchLimit = 50
	barWidth          = 30
	previewChars      = 60
)

var (
	positiveColor = lipgloss.Color("#00ff88")
	negativeColor = lipgloss.Color("#ff3b3b")
	neutralColor  = lipgloss.Color("#00e5ff")

	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8899aa"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

type renderOptions struct {
	ShowConfidence bool
	Limit          int
}

func labelColor(label entity.Label) lipgloss.Color {
	switch label {
	case entity.LabelPositive:
		return positiveColor
	case entity.LabelNegative:
		return negativeColor
	default:
		return neutralColor
	}
}

func labelMarker(label entity.Label) string {
	switch label {
	case entity.LabelPositive:
		return "+"
	case entity.LabelNegative:
		return "-"
	default:
		return "~"
	}
}

// confidenceBar draws score as a bar of width cells
func confidenceBar(score float64, width int) string {
	score = math.Max(0, math.Min(1, score))
	filled := int(score * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func renderSingle(text string, p *entity.Prediction, opts renderOptions) string {
	color := labelColor(p.Label)
	label := lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(p.Label.String()))

	lines := []string{
		titleStyle.Render("Input: ") + text,
		fmt.Sprintf("%s Sentiment: %s", labelMarker(p.Label), label),
	}
	if opts.ShowConfidence {
		bar := lipgloss.NewStyle().Foreground(color).Render(confidenceBar(p.Score, barWidth))
		lines = append(lines, fmt.Sprintf("Confidence: %.2f %s", p.Score, bar))
	}

	return boxStyle.BorderForeground(color).Render(strings.Join(lines, "\n")) + "\n"
}

func renderBatch(results []*entity.Prediction, opts renderOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processing %s texts...\n", titleStyle.Render(fmt.Sprint(len(results))))

	shown := results
	if opts.Limit > 0 && len(shown) > opts.Limit {
		shown = shown[:opts.Limit]
	}

	counts := make(map[entity.Label]int)
	for _, p := range results {
		counts[p.Label]++
	}

	for i, p := range shown {
		style := lipgloss.NewStyle().Foreground(labelColor(p.Label))
		row := fmt.Sprintf("%3d  %s", i+1, style.Bold(true).Render(fmt.Sprintf("%-9s", strings.ToUpper(p.Label.String()))))
		if opts.ShowConfidence {
			row += fmt.Sprintf(" %.3f %s", p.Score, style.Render(confidenceBar(p.Score, barWidth)))
		}
		row += "  " + dimStyle.Render(preview(p.Text))
		b.WriteString(row + "\n")
	}

	if hidden := len(results) - len(shown); hidden > 0 {
		fmt.Fprintf(&b, "... and %d more\n", hidden)
	}

	fmt.Fprintf(&b, "Positive: %d  Negative: %d  Neutral: %d\n",
		counts[entity.LabelPositive], counts[entity.LabelNegative], counts[entity.LabelNeutral])
	return b.String()
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= previewChars {
		return text
	}
	return string(runes[:previewChars-3]) + "..."
}
