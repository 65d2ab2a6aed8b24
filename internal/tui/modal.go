package tui

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/signup/internal/core/styles"
)

// Modal is a confirm/cancel dialog drawn over the wizard.
type Modal struct {
	title   string
	message string
	confirm bool // confirm button selected
}

// NewModal creates a modal with the confirm button selected.
func NewModal(title, message string) *Modal {
	return &Modal{title: title, message: message, confirm: true}
}

// Toggle switches the selected button.
func (m *Modal) Toggle() { m.confirm = !m.confirm }

// ConfirmSelected reports whether the confirm button is selected.
func (m *Modal) ConfirmSelected() bool { return m.confirm }

// Overlay centers the modal on a width x height canvas, replacing background.
// Without a known size the modal is appended below the background.
func (m *Modal) Overlay(background string, width, height int) string {
	confirmBtn, cancelBtn := styles.ModalButtonSelectedStyle, styles.ModalButtonStyle
	if !m.confirm {
		confirmBtn, cancelBtn = cancelBtn, confirmBtn
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		confirmBtn.Render("Leave"), "  ", cancelBtn.Render("Stay"))

	box := styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		lipgloss.NewStyle().MarginTop(1).Render(buttons),
		styles.ModalHelpStyle.Render("←/→ select  enter confirm  esc stay"),
	))

	if width == 0 || height == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, background, "", box)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
