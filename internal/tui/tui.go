// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the demo host's terminal UI (spec.md §9 "host"
// design notes, §4.15 [ADDED]).
//
// Built on Bubble Tea (github.com/charmbracelet/bubbletea), following the
// same Elm-architecture single-model-with-a-screen-enum shape the teacher's
// own internal/tui uses, scaled down to this demo's one screen flow:
// welcome menu -> create account / login via recovery code / connect to an
// existing device -> a status screen showing auth state, sync-in-progress,
// and sync support level as the Facade publishes them.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/syncvault/engine/internal/facade"
	"github.com/syncvault/engine/internal/logger"
	"github.com/syncvault/engine/models"
)

// TUI is the package facade, mirroring the teacher's TUI type: it holds the
// collaborator (here, the engine's Facade) and exposes one entry point that
// blocks for the lifetime of the interactive session.
type TUI struct {
	facade facade.Facade
	log    *logger.Logger
}

// New constructs a [TUI] driving f.
func New(f facade.Facade, log *logger.Logger) *TUI {
	return &TUI{facade: f, log: log}
}

// Run launches the interactive session in alternate-screen mode and blocks
// until the user quits. Background goroutines forward the Facade's publish
// channels into the running [tea.Program] via Send, so auth-state and
// sync-progress transitions are reflected without the UI polling for them.
func (t *TUI) Run(ctx context.Context, deviceName, deviceType string) error {
	model := newModel(ctx, t.facade, deviceName, deviceType)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go forward(program, t.facade.AuthState(), func(v models.AuthState) tea.Msg { return authStateMsg(v) })
	go forward(program, t.facade.IsSyncInProgress(), func(v bool) tea.Msg { return syncProgressMsg(v) })
	go forward(program, t.facade.SyncSupportLevel(), func(v models.SyncSupportLevel) tea.Msg { return supportLevelMsg(v) })
	go forward(program, t.facade.UnauthenticatedWhileLoggedIn(), func(v error) tea.Msg { return unauthenticatedMsg{err: v} })

	_, err := program.Run()
	t.log.Debug().Err(err).Msg("tui program exited")
	return err
}

// forward relays every value received on ch into program as a tea.Msg built
// by wrap, until ch is closed. [facade.Facade.Close] does not close the
// publish channels, so these goroutines run until the process exits.
func forward[T any](program *tea.Program, ch <-chan T, wrap func(T) tea.Msg) {
	for v := range ch {
		program.Send(wrap(v))
	}
}
