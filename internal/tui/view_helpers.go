// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/syncvault/engine/models"
)

const minDividerWidth = 54

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder
	divider := strings.Repeat("─", pageContentWidth(title, data, hotKeys))

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return b.String()
}

func pageContentWidth(title, data, hotKeys string) int {
	width := minDividerWidth

	width = max(width, lipgloss.Width(title))
	width = max(width, maxLineWidth(data))
	width = max(width, maxLineWidth(hotKeys))

	return width
}

func maxLineWidth(block string) int {
	if strings.TrimSpace(block) == "" {
		return 0
	}

	maxWidth := 0
	for _, line := range strings.Split(block, "\n") {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}
	return maxWidth
}

func authStateLabel(s authStateMsg) string {
	return models.AuthState(s).String()
}

func supportLevelLabel(l supportLevelMsg) string {
	switch models.SyncSupportLevel(l) {
	case models.SyncSupportUnavailable:
		return "unavailable"
	case models.SyncSupportShowSync:
		return "showSyncOnly"
	case models.SyncSupportAllowDataSyncing:
		return "allowDataSyncing"
	case models.SyncSupportAllowSetupFlows:
		return "allowSetupFlows"
	case models.SyncSupportAllowCreateAccount:
		return "allowCreateAccount"
	default:
		return "unknown"
	}
}
