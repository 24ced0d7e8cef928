// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// welcomeModel is the landing menu: create a brand-new account, log in with
// an existing account's recovery code, or connect this device to one that
// is already logged in.
type welcomeModel struct {
	items []string
	idx   int
}

func newWelcomeModel() *welcomeModel {
	return &welcomeModel{
		items: []string{"Create account", "Log in with recovery code", "Connect to a logged-in device"},
	}
}

func (m *welcomeModel) Init() tea.Cmd { return nil }

func (m *welcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		switch m.idx {
		case 0:
			return m, func() tea.Msg { return navigateTo{page: "create"} }
		case 1:
			return m, func() tea.Msg { return navigateTo{page: "login"} }
		case 2:
			return m, func() tea.Msg { return navigateTo{page: "connect"} }
		}
	}

	return m, nil
}

func (m *welcomeModel) View() string {
	var b strings.Builder
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor + item + "\n")
	}

	return renderPage("syncdemo", strings.TrimRight(b.String(), "\n"), "up/down: select · enter: choose")
}
