package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dmateus/plantdoc/internal/models"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show your analysis dashboard",
	Long:  `Summarize your uploads: totals, success rate and disease/severity distributions.`,
	RunE:  runAnalytics,
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	spin := newSpinner("Fetching analytics")
	spin.start()

	report, err := deps.Client.Analytics()
	if err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to fetch analytics"))
		return fmt.Errorf("failed to fetch analytics: %w", err)
	}
	spin.stopWithSuccess("Analytics loaded")

	headerStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	fmt.Println(headerStyle.Render("Summary"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "%s\t%d\n", labelStyle.Render("Total uploads"), report.Summary.TotalUploads)
	_, _ = fmt.Fprintf(w, "%s\t%d\n", labelStyle.Render("Analyzed"), report.Summary.Analyzed)
	_, _ = fmt.Fprintf(w, "%s\t%.1f%%\n", labelStyle.Render("Success rate"), report.Summary.SuccessRate)
	_, _ = fmt.Fprintf(w, "%s\t%.0f%%\n", labelStyle.Render("Avg confidence"), report.Summary.AvgConfidence*100)
	if err := w.Flush(); err != nil {
		return err
	}

	printDistribution("Diseases", report.DiseaseDistribution)
	printDistribution("Severity", report.SeverityDistribution)
	return nil
}

// printDistribution renders one name/value distribution as a bar list.
func printDistribution(title string, items []models.DistributionItem) {
	if len(items) == 0 {
		return
	}

	max := 0
	for _, item := range items {
		if item.Value > max {
			max = item.Value
		}
	}
	if max == 0 {
		return
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	barStyle := lipgloss.NewStyle().Foreground(colorSuccess)

	fmt.Println()
	fmt.Println(headerStyle.Render(title))
	for _, item := range items {
		barWidth := item.Value * 30 / max
		if barWidth < 1 {
			barWidth = 1
		}
		fmt.Printf("  %-32s %s %d\n",
			models.HumanizeDiseaseName(item.Name),
			barStyle.Render(strings.Repeat("█", barWidth)),
			item.Value)
	}
}
