// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/syncvault/engine/internal/facade"
	"github.com/syncvault/engine/models"
)

// loginModel drives the "log in with recovery code" flow: a single text
// field for the recovery code produced by [createAccountModel] or by
// another device's settings screen.
type loginModel struct {
	ctx        context.Context
	facade     facade.Facade
	deviceName string
	deviceType string

	input      textinput.Model
	submitting bool
	errMsg     string
}

func newLoginModel(ctx context.Context, f facade.Facade, deviceName, deviceType string) *loginModel {
	input := textinput.New()
	input.Placeholder = "recovery code"
	input.Width = 60
	input.Focus()

	return &loginModel{ctx: ctx, facade: f, deviceName: deviceName, deviceType: deviceType, input: input}
}

func (m *loginModel) Init() tea.Cmd { return textinput.Blink }

func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResult); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = result.err.Error()
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.errMsg = ""
			return m, func() tea.Msg { return navigateTo{page: "welcome"} }
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			code := strings.TrimSpace(m.input.Value())
			if code == "" {
				m.errMsg = "recovery code is required"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(code)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *loginModel) View() string {
	var b strings.Builder
	b.WriteString("Recovery code: [" + m.input.View() + "]\n")

	switch {
	case m.submitting:
		b.WriteString("\nlogging in...\n")
	case m.errMsg != "":
		b.WriteString("\n" + errorStyle.Render("error: "+m.errMsg) + "\n")
	}

	return renderPage("Log in", strings.TrimRight(b.String(), "\n"), "esc: back · enter: submit")
}

func (m *loginModel) cmdLogin(code string) tea.Cmd {
	ctx := m.ctx
	f := m.facade
	deviceName, deviceType := m.deviceName, m.deviceType

	return func() tea.Msg {
		recoveryKey, err := models.DecodeRecoveryKey(code)
		if err != nil {
			return loginResult{err: err}
		}
		if err := f.Login(ctx, recoveryKey, deviceName, deviceType); err != nil {
			return loginResult{err: err}
		}
		return loginResult{}
	}
}
