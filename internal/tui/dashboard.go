package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/signup/internal/core/styles"
)

const dashboardHelp = "l: log out  q: quit"

// dashboardMarkdown summarizes the accepted registration and the time spent
// on each step.
func (m Model) dashboardMarkdown() string {
	var b strings.Builder

	acct := m.record.Account
	fmt.Fprintf(&b, "# Welcome, %s!\n\n", acct.FirstName)

	if m.receipt != nil {
		fmt.Fprintf(&b, "Your account **%s** was created on %s.\n\n",
			m.receipt.Username, m.receipt.CreatedAt.Format("02 Jan 2006 15:04"))
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Name | %s %s |\n", acct.FirstName, acct.LastName)
	fmt.Fprintf(&b, "| Date of birth | %s |\n", acct.DateOfBirth)
	fmt.Fprintf(&b, "| Email | %s |\n", m.record.Email)
	loc := m.record.Locale
	if loc.Region != "" {
		fmt.Fprintf(&b, "| Location | %s, %s |\n", loc.Region, loc.Country)
	} else {
		fmt.Fprintf(&b, "| Location | %s |\n", loc.Country)
	}
	fmt.Fprintf(&b, "| Time zone | %s |\n", loc.Timezone)
	if m.receipt != nil {
		fmt.Fprintf(&b, "| Account ID | `%s` |\n", m.receipt.ID)
	}

	if len(m.summaries) > 0 {
		b.WriteString("\n## Session\n\n| Step | Time on page | Interactions |\n|---|---|---|\n")
		for _, s := range m.summaries {
			fmt.Fprintf(&b, "| %s | %.2fs | %d |\n", s.Page, s.TimeOnPage.Seconds(), s.Interactions)
		}
	}

	return b.String()
}

func (m Model) renderDashboard() string {
	md := m.dashboardMarkdown()
	help := styles.TextMutedStyle.Render(dashboardHelp)

	width := m.width - 4
	if width < 40 {
		width = 80
	}

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return md + "\n" + help
	}

	out, err := renderer.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return md + "\n" + help
	}

	return strings.TrimSpace(out) + "\n\n" + help
}
