package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/signup/internal/core/styles"
)

const progressSeparator = " › "

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	v.WindowTitle = "signup · " + m.step.Title()
	return v
}

func (m Model) render() string {
	if m.quitting {
		return ""
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.BannerStyle.Render(styles.Banner),
		m.renderProgress(),
		"",
		m.renderBody(),
	)

	if m.modal != nil {
		content = m.modal.Overlay(content, m.width, m.height)
	}
	return content
}

func (m Model) renderProgress() string {
	parts := make([]string, 0, StepDashboard+1)
	for s := StepEmail; s <= StepDashboard; s++ {
		style := styles.StepPendingStyle
		label := s.Title()
		switch {
		case s == m.step:
			style = styles.StepActiveStyle
		case s < m.step:
			style = styles.StepDoneStyle
			label = "✓ " + label
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, styles.DividerStyle.Render(progressSeparator))
}

func (m Model) renderBody() string {
	switch m.step {
	case StepConfirmed:
		return m.renderConfirmed()
	case StepDashboard:
		return m.dashboard
	}

	d := m.dialog()
	parts := []string{styles.FormTitleStyle.Render(d.Title), "", d.View()}

	if m.pending != "" {
		parts = append(parts, "", m.spinner.View()+" "+styles.TextMutedStyle.Render(m.pending))
	}
	if m.submitErr != "" {
		parts = append(parts, "", styles.TextErrorStyle.Render(m.submitErr))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderConfirmed() string {
	lines := []string{
		styles.TextSuccessStyle.Render("✓ Email Confirmation Successful"),
		"",
		styles.TextForegroundStyle.Render("Your email address has been verified."),
		styles.TextForegroundStyle.Render("Continue to set up your account information."),
		"",
	}
	if d := m.deps.Config.ConfirmRedirect; d > 0 {
		lines = append(lines, styles.TextMutedStyle.Render("Continuing automatically in "+d.String()+"."))
	}
	lines = append(lines, styles.TextMutedStyle.Render("enter: continue  esc: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
