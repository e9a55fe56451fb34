package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmateus/plantdoc/internal/config"
	"github.com/dmateus/plantdoc/internal/models"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a persisted setting. Keys:

  base-url    Service URL
  language    Locale for diagnosis and chat (en, hi, es, fr)
  clipboard   Copy replies and treatments to the clipboard (true/false)
  style       Markdown theme (dark, light, or path to JSON)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "base-url\t%s\n", cfg.BaseURL)
	_, _ = fmt.Fprintf(w, "language\t%s\n", cfg.Language)
	_, _ = fmt.Fprintf(w, "clipboard\t%t\n", cfg.CopyToClipboard)
	_, _ = fmt.Fprintf(w, "style\t%s\n", cfg.Markdown.Style)
	return w.Flush()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case "base-url":
		cfg.BaseURL = value
	case "language":
		if !supportedLanguage(value) {
			return fmt.Errorf("unsupported language: %s (use en, hi, es, fr)", value)
		}
		cfg.Language = value
	case "clipboard":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("clipboard expects true or false")
		}
		cfg.CopyToClipboard = enabled
	case "style":
		cfg.Markdown.Style = value
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func supportedLanguage(code string) bool {
	for _, l := range models.AllLanguages() {
		if l.Code == code {
			return true
		}
	}
	return false
}
