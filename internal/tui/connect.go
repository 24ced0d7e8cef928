// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/syncvault/engine/internal/facade"
)

// connectModel drives this device's half of the Connect Broker handshake
// (spec.md §4.8): it asks the Facade for a connect code, shows it for the
// user to relay out-of-band to an already-logged-in device, and waits for
// that device to deliver a sealed recovery key.
type connectModel struct {
	ctx        context.Context
	facade     facade.Facade
	deviceName string
	deviceType string

	started     bool
	connectCode string
	waiting     bool
	spinner     spinner.Model
	errMsg      string
	done        bool
}

func newConnectModel(ctx context.Context, f facade.Facade, deviceName, deviceType string) *connectModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &connectModel{ctx: ctx, facade: f, deviceName: deviceName, deviceType: deviceType, spinner: s}
}

func (m *connectModel) Init() tea.Cmd { return nil }

func (m *connectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case connectStartedResult:
		if typed.err != nil {
			m.errMsg = typed.err.Error()
			return m, nil
		}
		m.started = true
		m.connectCode = typed.connectCode
		m.waiting = true
		return m, tea.Batch(m.spinner.Tick, waitForConnect(typed.done))
	case connectFinishedMsg:
		m.waiting = false
		if typed.err != nil {
			m.errMsg = typed.err.Error()
			return m, nil
		}
		m.done = true
		return m, func() tea.Msg { return navigateTo{page: "status"} }
	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		if m.waiting {
			return m, nil
		}
		return m, func() tea.Msg { return navigateTo{page: "welcome"} }
	case key.Matches(keyMsg, keys.enter):
		if m.started {
			return m, nil
		}
		return m, m.cmdStart()
	}

	return m, nil
}

func (m *connectModel) View() string {
	var b strings.Builder
	hotKeys := "enter: generate connect code · esc: back"

	switch {
	case m.connectCode != "":
		b.WriteString("Share this connect code with a logged-in device:\n\n")
		b.WriteString(codeStyle.Render(m.connectCode))
		b.WriteString("\n")
		if m.waiting {
			b.WriteString("\n" + m.spinner.View() + " waiting for the other device...\n")
			hotKeys = ""
		} else {
			hotKeys = "esc: back"
		}
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("error: " + m.errMsg))
		b.WriteString("\n")
		hotKeys = "enter: retry · esc: back"
	}

	return renderPage("Connect to a logged-in device", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *connectModel) cmdStart() tea.Cmd {
	ctx := m.ctx
	f := m.facade
	deviceName, deviceType := m.deviceName, m.deviceType

	return func() tea.Msg {
		code, done, err := f.RemoteConnect(ctx, deviceName, deviceType)
		if err != nil {
			return connectStartedResult{err: err}
		}

		encoded, err := code.Encode()
		if err != nil {
			return connectStartedResult{err: err}
		}
		return connectStartedResult{connectCode: encoded, done: done}
	}
}

func waitForConnect(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		err := <-done
		return connectFinishedMsg{err: err}
	}
}
