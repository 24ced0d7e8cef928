// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/syncvault/engine/internal/facade"
)

// createAccountModel drives the "create account" flow: a single confirmation
// step followed by a one-time recovery code the user must save, since it is
// the only way to add another device or recover the account later.
type createAccountModel struct {
	ctx        context.Context
	facade     facade.Facade
	deviceName string
	deviceType string

	submitting  bool
	recoveryKey string
	errMsg      string
	copied      bool
}

func newCreateAccountModel(ctx context.Context, f facade.Facade, deviceName, deviceType string) *createAccountModel {
	return &createAccountModel{ctx: ctx, facade: f, deviceName: deviceName, deviceType: deviceType}
}

func (m *createAccountModel) Init() tea.Cmd { return nil }

func (m *createAccountModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case createAccountResult:
		m.submitting = false
		if typed.err != nil {
			m.errMsg = typed.err.Error()
			return m, nil
		}
		m.recoveryKey = typed.recoveryKey
		return m, nil
	case copiedMsg:
		m.copied = true
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		if m.recoveryKey != "" {
			return m, func() tea.Msg { return navigateTo{page: "status"} }
		}
		return m, func() tea.Msg { return navigateTo{page: "welcome"} }
	case key.Matches(keyMsg, keys.copy):
		if m.recoveryKey == "" {
			return m, nil
		}
		return m, m.cmdCopy()
	case key.Matches(keyMsg, keys.enter):
		if m.recoveryKey != "" {
			return m, func() tea.Msg { return navigateTo{page: "status"} }
		}
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		m.errMsg = ""
		return m, m.cmdCreate()
	}

	return m, nil
}

func (m *createAccountModel) View() string {
	var b strings.Builder
	b.WriteString("Device: " + m.deviceName + " (" + m.deviceType + ")\n\n")

	hotKeys := "enter: create account"
	switch {
	case m.recoveryKey != "":
		b.WriteString("Recovery code (save this, it will not be shown again):\n\n")
		b.WriteString(codeStyle.Render(m.recoveryKey))
		b.WriteString("\n")
		if m.copied {
			b.WriteString("\ncopied to clipboard\n")
		}
		hotKeys = "c: copy to clipboard · enter: continue"
	case m.submitting:
		b.WriteString("creating account...\n")
		hotKeys = ""
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("Create account", strings.TrimRight(b.String(), "\n"), hotKeys+" · esc: back")
}

func (m *createAccountModel) cmdCreate() tea.Cmd {
	ctx := m.ctx
	f := m.facade
	deviceName, deviceType := m.deviceName, m.deviceType

	return func() tea.Msg {
		recoveryKey, err := f.CreateAccount(ctx, deviceName, deviceType)
		if err != nil {
			return createAccountResult{err: err}
		}

		encoded, err := recoveryKey.Encode()
		if err != nil {
			return createAccountResult{err: err}
		}
		return createAccountResult{recoveryKey: encoded}
	}
}

func (m *createAccountModel) cmdCopy() tea.Cmd {
	text := m.recoveryKey
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return createAccountResult{err: err, recoveryKey: text}
		}
		return copiedMsg{}
	}
}
