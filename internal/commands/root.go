// Package commands provides CLI commands for plantdoc.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURLFlag  string
	languageFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "plantdoc",
	Short: "CLI for the PlantDoc plant disease service",
	Long: `plantdoc is a command-line client for the PlantDoc service. It
uploads plant photos for AI disease diagnosis, browses your analysis
history and analytics, and talks to the farming assistant.

Examples:
  plantdoc login                        Log in to your account
  plantdoc analyze leaf.jpg             Diagnose a plant photo
  plantdoc history list                 List past analyses
  plantdoc analytics                    Show your analytics dashboard
  plantdoc chat                         Start the interactive assistant
  plantdoc chat "why are my leaves yellow?"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("plantdoc %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Service URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&languageFlag, "language", "l", "", "Locale for diagnosis and chat (en, hi, es, fr)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
}
