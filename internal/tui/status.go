// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/syncvault/engine/internal/facade"
	"github.com/syncvault/engine/models"
)

// statusModel is the main screen once an account is active: it shows the
// live auth state, sync support level, and sync-in-progress indicator the
// Facade publishes, the account's device list, and lets the user transmit
// a recovery key to a new device that is waiting at the connect screen.
type statusModel struct {
	ctx    context.Context
	facade facade.Facade

	authState    authStateMsg
	syncing      bool
	supportLevel supportLevelMsg

	devices     []models.Device
	devicesErr  string
	loading     bool
	spinner     spinner.Model

	transmitting bool
	input        textinput.Model
	transmitMsg  string
}

func newStatusModel(ctx context.Context, f facade.Facade) *statusModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	input := textinput.New()
	input.Placeholder = "connect code"
	input.Width = 60

	return &statusModel{ctx: ctx, facade: f, spinner: s, input: input}
}

func (m *statusModel) Init() tea.Cmd {
	m.loading = true
	return m.cmdFetchDevices()
}

func (m *statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case authStateMsg:
		m.authState = typed
		return m, nil
	case syncProgressMsg:
		m.syncing = bool(typed)
		if m.syncing {
			return m, m.spinner.Tick
		}
		return m, nil
	case supportLevelMsg:
		m.supportLevel = typed
		return m, nil
	case devicesLoadedMsg:
		m.loading = false
		if typed.err != nil {
			m.devicesErr = typed.err.Error()
			return m, nil
		}
		m.devices = typed.devices
		m.devicesErr = ""
		return m, nil
	case transmitResult:
		m.transmitting = false
		if typed.err != nil {
			m.transmitMsg = "error: " + typed.err.Error()
		} else {
			m.transmitMsg = "recovery key delivered"
		}
		m.input.SetValue("")
		return m, nil
	case spinner.TickMsg:
		if !m.syncing {
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

	if m.transmitting {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.transmitting = false
			m.input.Blur()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			code := strings.TrimSpace(m.input.Value())
			if code == "" {
				return m, nil
			}
			return m, m.cmdTransmit(code)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "r":
		m.loading = true
		return m, m.cmdFetchDevices()
	case "t":
		m.transmitting = true
		m.transmitMsg = ""
		m.input.Focus()
		return m, textinput.Blink
	case "x":
		return m, m.cmdDisconnect()
	}

	return m, nil
}

func (m *statusModel) View() string {
	var b strings.Builder
	b.WriteString("Auth state:   " + authStateLabel(m.authState) + "\n")
	b.WriteString("Sync support: " + supportLevelLabel(m.supportLevel) + "\n")
	if m.syncing {
		b.WriteString("Sync:         " + m.spinner.View() + " in progress\n")
	} else {
		b.WriteString("Sync:         idle\n")
	}
	b.WriteString("\nDevices:\n")

	switch {
	case m.loading:
		b.WriteString("  loading...\n")
	case m.devicesErr != "":
		b.WriteString("  " + errorStyle.Render(m.devicesErr) + "\n")
	case len(m.devices) == 0:
		b.WriteString("  -\n")
	default:
		for _, d := range m.devices {
			b.WriteString(fmt.Sprintf("  %-12s %s (%s)\n", d.DeviceID, d.DeviceName, d.DeviceType))
		}
	}

	if m.transmitting {
		b.WriteString("\nConnect code from new device: [" + m.input.View() + "]\n")
	} else if m.transmitMsg != "" {
		b.WriteString("\n" + m.transmitMsg + "\n")
	}

	hotKeys := "r: refresh devices · t: send recovery key to new device · x: disconnect"
	if m.transmitting {
		hotKeys = "enter: send · esc: cancel"
	}
	return renderPage("syncdemo", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *statusModel) cmdFetchDevices() tea.Cmd {
	ctx := m.ctx
	f := m.facade
	return func() tea.Msg {
		devices, err := f.FetchDevices(ctx)
		return devicesLoadedMsg{devices: devices, err: err}
	}
}

func (m *statusModel) cmdTransmit(code string) tea.Cmd {
	ctx := m.ctx
	f := m.facade
	return func() tea.Msg {
		connectCode, err := models.DecodeConnectCode(code)
		if err != nil {
			return transmitResult{err: err}
		}
		return transmitResult{err: f.TransmitRecoveryKey(ctx, connectCode)}
	}
}

func (m *statusModel) cmdDisconnect() tea.Cmd {
	ctx := m.ctx
	f := m.facade
	return func() tea.Msg {
		f.Disconnect(ctx)
		return navigateTo{page: "welcome"}
	}
}
