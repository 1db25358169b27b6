package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn the puzzle with the mouse",
	Long: `Start the interactive puzzle view.

Mouse:
  left-drag on a face   - turn the layer under the cursor
  right-drag            - orbit the camera
  wheel                 - zoom

Keyboard shortcuts:
  arrows  - orbit the camera
  +/-     - zoom
  c       - reset the camera
  r       - reset the puzzle
  p       - save a PNG snapshot of the current view
  d       - toggle the debug line
  q/Esc   - quit`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	model := tui.New(tui.Options{
		Config: cfg,
		Logger: logger,
		Title:  "twisty",
	})
	return runProgram(model)
}

func runProgram(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
