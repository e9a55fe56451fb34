package commands

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "plantdoc" {
		t.Errorf("Expected use 'plantdoc', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	// Test that subcommands are registered
	expectedSubcommands := []string{
		"login", "signup", "logout", "whoami",
		"analyze", "history", "analytics", "chat", "config",
	}
	for _, sub := range expectedSubcommands {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == sub {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Subcommand %s not found", sub)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("base-url") == nil {
		t.Error("base-url flag should be registered")
	}

	lang := rootCmd.PersistentFlags().Lookup("language")
	if lang == nil {
		t.Fatal("language flag should be registered")
	}
	if lang.Shorthand != "l" {
		t.Errorf("Expected shorthand 'l', got %s", lang.Shorthand)
	}
}

func TestVersionFlag(t *testing.T) {
	if rootCmd.Flags().Lookup("version") == nil {
		t.Error("version flag should be registered")
	}
}
