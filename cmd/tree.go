package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lokitools/schema/cli"
	"github.com/lokitools/schema/errors"
	"github.com/lokitools/schema/tui"
	"github.com/lokitools/schema/tui/schematree"
	"github.com/lokitools/schema/tui/theme"
	"github.com/spf13/cobra"
)

func NewTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file.json>",
		Short: "Browse a JSON schema document interactively",
		Long: `Opens a schema document in a collapsible tree viewer. $ref values are
colored by where they point; internal references that do not resolve against
the document are flagged.

Examples:
  # Inspect a resolved schema
  lokischema tree schemas/pets.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return errors.New(errors.ErrCodeInvalidInput, "file not found: "+path).
						WithDetail("path", path)
				}
				return err
			}

			var doc interface{}
			if err := json.Unmarshal(data, &doc); err != nil {
				return errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse JSON document").
					WithDetail("path", path)
			}

			tui.InitializeTUI()

			model := treeModel{tree: schematree.New(doc), path: path}
			if broken := model.tree.BrokenRefCount(); broken > 0 {
				logger.Warnf("%d reference(s) in %s do not resolve", broken, path)
			}

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}

// treeModel wraps the schematree component with a title line and quit handling.
type treeModel struct {
	tree schematree.Model
	path string
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Reserve one line for the title
		m.tree.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case schematree.BackMsg:
		return m, tea.Quit
	}

	newTree, cmd := m.tree.Update(msg)
	m.tree = newTree.(schematree.Model)
	return m, cmd
}

func (m treeModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.DefaultColors.Orange)
	return title.Render(theme.IconSchema+" "+m.path) + "\n" + m.tree.View()
}
