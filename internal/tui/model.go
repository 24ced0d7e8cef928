// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/syncvault/engine/internal/facade"
	"github.com/syncvault/engine/models"
)

// rootModel is the top-level TUI router. It keeps track of the currently
// active page, handles the global quit hotkey, intercepts [navigateTo]
// messages to switch pages, and republishes the Facade's background state
// (auth state, sync-in-progress, sync support level) to every page so every
// page can render a consistent status line.
type rootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	authState     authStateMsg
	syncing       syncProgressMsg
	supportLevel  supportLevelMsg
	lastUnauthErr error
}

func newModel(ctx context.Context, f facade.Facade, deviceName, deviceType string) tea.Model {
	pages := map[string]tea.Model{
		"welcome": newWelcomeModel(),
		"create":  newCreateAccountModel(ctx, f, deviceName, deviceType),
		"login":   newLoginModel(ctx, f, deviceName, deviceType),
		"connect": newConnectModel(ctx, f, deviceName, deviceType),
		"status":  newStatusModel(ctx, f),
	}

	return rootModel{
		pages:        pages,
		current:      pages["welcome"],
		authState:    authStateMsg(models.AuthStateInitializing),
		supportLevel: supportLevelMsg(models.SyncSupportAllowCreateAccount),
	}
}

func (m rootModel) Init() tea.Cmd {
	if m.current == nil {
		return nil
	}
	return m.current.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.quit) {
		return m, tea.Quit
	}

	switch typed := msg.(type) {
	case authStateMsg:
		m.authState = typed
		if typed == authStateMsg(models.AuthStateActive) {
			m.current = m.pages["status"]
			return m, tea.Batch(m.broadcast(msg), m.current.Init())
		}
		return m, m.broadcast(msg)
	case syncProgressMsg:
		m.syncing = typed
		return m, m.broadcast(msg)
	case supportLevelMsg:
		m.supportLevel = typed
		return m, m.broadcast(msg)
	case unauthenticatedMsg:
		m.lastUnauthErr = typed.err
		m.authState = authStateMsg(models.AuthStateInactive)
		m.current = m.pages["welcome"]
		return m, nil
	case navigateTo:
		next, exists := m.pages[typed.page]
		if !exists {
			return m, nil
		}
		m.current = next
		if typed.payload != nil {
			return m, func() tea.Msg { return typed.payload }
		}
		return m, m.current.Init()
	}

	if m.current == nil {
		return m, nil
	}

	updated, cmd := m.current.Update(msg)
	m.current = updated
	return m, cmd
}

func (m rootModel) View() string {
	if m.current == nil {
		return appStyle.Render(renderPage("syncdemo", "", ""))
	}
	return appStyle.Render(m.current.View())
}

// broadcast forwards msg to every page so background-state updates (auth
// state, sync progress, support level) reach pages that are not currently
// active but keep state across navigation, e.g. the status page.
func (m rootModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for name, page := range m.pages {
		updated, cmd := page.Update(msg)
		m.pages[name] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
