package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dmateus/plantdoc/internal/analysis"
	"github.com/dmateus/plantdoc/internal/models"
	"github.com/dmateus/plantdoc/internal/render"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Upload a plant photo for disease diagnosis",
	Long: `Upload a single plant photo to the PlantDoc service and print the
diagnosis: disease, severity, recommended treatment and prevention tips.

Supported formats: JPEG, PNG, GIF, WebP (max 20 MB).`,
	Args: cobra.ArbitraryArgs,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	controller := analysis.NewController(deps.Client, deps.Session, deps.Records)

	spin := newSpinner("Analyzing image")
	spin.start()

	projection, err := controller.Analyze(args)
	if err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Analysis failed"))
		return fmt.Errorf("analysis failed: %w", err)
	}
	spin.stopWithSuccess("Diagnosis complete")

	printDiagnosis(deps, projection.FileName, projection.Preview, projection.Result)
	return nil
}

// printDiagnosis renders one diagnosis panel. Shared with `history view`.
func printDiagnosis(deps *Dependencies, title, imageURL string, result models.AnalysisResult) {
	width := getTerminalWidth() - 4
	if width < 40 {
		width = 40
	}
	if width > 100 {
		width = 100
	}

	labelStyle := lipgloss.NewStyle().Foreground(colorTextDim)
	valueStyle := lipgloss.NewStyle().Foreground(colorText)
	diseaseStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(diseaseStyle.Render(result.Disease))
	sb.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Confidence", fmt.Sprintf("%.0f%%", result.Confidence*100)},
		{"Severity", severityLabel(result.Severity)},
		{"Recovery", result.RecoveryTime},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", row.label)))
		sb.WriteString(valueStyle.Render(row.value))
		sb.WriteString("\n")
	}

	if result.Cure != "" {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("Treatment"))
		sb.WriteString("\n")
		rendered, err := render.Markdown(result.Cure, render.FromConfig(deps.Config.Markdown, width-6))
		if err != nil {
			rendered = result.Cure
		}
		sb.WriteString(strings.TrimRight(rendered, "\n"))
		sb.WriteString("\n")
	}

	if len(result.PreventiveMeasures) > 0 {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("Prevention"))
		sb.WriteString("\n")
		for _, tip := range result.PreventiveMeasures {
			sb.WriteString(valueStyle.Render("  • " + tip))
			sb.WriteString("\n")
		}
	}

	if imageURL != "" && !strings.HasPrefix(imageURL, "data:") {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("Image      "))
		sb.WriteString(lipgloss.NewStyle().Foreground(colorTextDim).Underline(true).Render(imageURL))
		sb.WriteString("\n")
	}

	panel := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1).
		Width(width).
		Render(strings.TrimRight(sb.String(), "\n"))

	if title != "" {
		fmt.Println(lipgloss.NewStyle().Foreground(colorTextDim).Render(title))
	}
	fmt.Println(panel)

	if deps.Config.CopyToClipboard && result.Cure != "" {
		if err := clipboard.WriteAll(result.Cure); err == nil {
			clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Treatment copied to clipboard")
			fmt.Fprintln(os.Stderr, clipMsg)
		}
	}
}

// severityLabel colors the severity bucket for display.
func severityLabel(s models.Severity) string {
	switch s {
	case models.SeverityHigh:
		return lipgloss.NewStyle().Foreground(colorErr).Bold(true).Render(string(s))
	case models.SeverityMedium:
		return lipgloss.NewStyle().Foreground(colorWarn).Render(string(s))
	case models.SeverityLow:
		return lipgloss.NewStyle().Foreground(colorSuccess).Render(string(s))
	default:
		return string(s)
	}
}
