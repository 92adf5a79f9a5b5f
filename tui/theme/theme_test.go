package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewThemeWithNameResolvesAliases(t *testing.T) {
	want := newKanagawaColors().Green

	for _, name := range []string{"kanagawa", "Kanagawa Dragon", "kanagawa_wave", "KANAGAWA-DARK"} {
		th := NewThemeWithName(name)
		if th.Colors.Green != want {
			t.Errorf("NewThemeWithName(%q) did not resolve to the kanagawa palette", name)
		}
	}
}

func TestNewThemeWithNameUnknownFallsBack(t *testing.T) {
	th := NewThemeWithName("no-such-theme")
	if th.Colors.Green != newKanagawaColors().Green {
		t.Error("unknown theme name should fall back to the default palette")
	}
}

func TestNewThemeReadsEnv(t *testing.T) {
	t.Setenv("LOKI_THEME", "terminal")

	th := NewTheme()
	if th.Colors.Green != lipgloss.Color(terminalGreen) {
		t.Errorf("LOKI_THEME=terminal not honored, got %v", th.Colors.Green)
	}
}

func TestRenderStatus(t *testing.T) {
	if got := RenderStatus("success", "all good"); !strings.Contains(got, "all good") {
		t.Errorf("RenderStatus(success) lost its text: %q", got)
	}
	if got := RenderStatus("unrecognized", "plain"); got != "plain" {
		t.Errorf("RenderStatus with unknown status should pass text through, got %q", got)
	}
}
