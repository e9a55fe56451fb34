package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmateus/plantdoc/internal/history"
	"github.com/dmateus/plantdoc/internal/models"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse your analysis history",
	Long:  `View and manage analyses stored on the server.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all past analyses",
	RunE:  runHistoryList,
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one analysis in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryView,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an analysis from the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}

func fetchHistory(deps *Dependencies) (*history.Reconciler, error) {
	reconciler := history.NewReconciler(deps.Client, deps.Session)

	spin := newSpinner("Fetching history")
	spin.start()
	if err := reconciler.Fetch(); err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to fetch history"))
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	spin.stopWithSuccess("History loaded")

	return reconciler, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	reconciler, err := fetchHistory(deps)
	if err != nil {
		return err
	}

	entries := reconciler.Entries()
	if len(entries) == 0 {
		fmt.Println("No analyses found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDISEASE\tSEVERITY\tCONFIDENCE\tDATE")
	_, _ = fmt.Fprintln(w, "--\t-------\t--------\t----------\t----")

	for _, e := range entries {
		disease := models.HumanizeDiseaseName(e.DiseaseName)
		if len(disease) > 40 {
			disease = disease[:40] + "..."
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%.0f%%\t%s\n",
			e.ID, disease, e.Severity, e.Confidence*100, e.CreatedAt)
	}

	return w.Flush()
}

func runHistoryView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}

	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	reconciler, err := fetchHistory(deps)
	if err != nil {
		return err
	}

	for _, e := range reconciler.Entries() {
		if e.ID == id {
			detail := history.ViewDetails(e)
			printDiagnosis(deps, detail.CapturedAt, detail.ImageURL, detail.Result)
			return nil
		}
	}

	return fmt.Errorf("analysis %d not found", id)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[0])
	}

	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	reconciler, err := fetchHistory(deps)
	if err != nil {
		return err
	}

	if err := reconciler.Delete(id); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to delete"))
		return fmt.Errorf("failed to delete: %w", err)
	}

	fmt.Printf("Deleted analysis %d.\n", id)
	return nil
}
