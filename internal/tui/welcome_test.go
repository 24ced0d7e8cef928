// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeModel_DownThenEnterNavigatesToLogin(t *testing.T) {
	m := newWelcomeModel()

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.idx)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	nav, ok := cmd().(navigateTo)
	require.True(t, ok)
	assert.Equal(t, "login", nav.page)
}

func TestWelcomeModel_UpAtTopStaysPut(t *testing.T) {
	m := newWelcomeModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyUp})

	assert.Equal(t, 0, m.idx)
	assert.Nil(t, cmd)
}

func TestWelcomeModel_DownPastEndStaysAtLastItem(t *testing.T) {
	m := newWelcomeModel()

	for i := 0; i < 10; i++ {
		_, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, len(m.items)-1, m.idx)
}
