package display

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a minimal yes/no prompt. The driver runs it at the
// card-decide suspension point; tests answer through game.ApplyCard
// directly and never touch this.
type confirmModel struct {
	question string
	accepted bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			m.accepted = true
			return m, tea.Quit
		case "n", "N", "esc", "q", "ctrl+c":
			m.accepted = false
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	return fmt.Sprintf("%s %s\n", QuestStyle.Render(m.question), InfoStyle.Render("[y/N]"))
}

// Confirm blocks on a yes/no answer from the terminal.
func Confirm(question string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question}).Run()
	if err != nil {
		return false, fmt.Errorf("confirm prompt failed: %w", err)
	}
	return final.(confirmModel).accepted, nil
}
