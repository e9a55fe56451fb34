package render

import (
	"strings"
	"testing"

	"github.com/dmateus/plantdoc/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Width != 80 {
		t.Errorf("Width = %d, want 80", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("Style = %q, want dark", opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines {
		t.Error("emoji and newline preservation should default on")
	}
}

func TestOptions_WithWidth(t *testing.T) {
	opts := DefaultOptions().WithWidth(120)
	if opts.Width != 120 {
		t.Errorf("Width = %d, want 120", opts.Width)
	}
	// Value semantics: the original is untouched
	if DefaultOptions().Width != 80 {
		t.Error("WithWidth must not mutate defaults")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.MarkdownConfig{
		Style:            "light",
		EnableEmoji:      false,
		PreserveNewLines: true,
	}

	opts := FromConfig(cfg, 100)
	if opts.Style != "light" {
		t.Errorf("Style = %q, want light", opts.Style)
	}
	if opts.Width != 100 {
		t.Errorf("Width = %d, want 100", opts.Width)
	}
	if opts.EnableEmoji {
		t.Error("EnableEmoji should follow the config")
	}

	// An empty style falls back to the default theme
	opts = FromConfig(config.MarkdownConfig{}, 80)
	if opts.Style != "dark" {
		t.Errorf("Style = %q, want dark fallback", opts.Style)
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("# Treatment\n\nApply *fungicide*.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() failed: %v", err)
	}
	if !strings.Contains(out, "Treatment") {
		t.Errorf("rendered output missing heading: %q", out)
	}
}

func TestMarkdown_PoolReuse(t *testing.T) {
	opts := DefaultOptions().WithWidth(60)
	for i := 0; i < 3; i++ {
		if _, err := Markdown("plain text", opts); err != nil {
			t.Fatalf("render %d failed: %v", i, err)
		}
	}
}
