// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package facade

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/syncvault/engine/internal/account"
	"github.com/syncvault/engine/internal/connect"
	"github.com/syncvault/engine/internal/scheduler"
	"github.com/syncvault/engine/internal/securestore"
	"github.com/syncvault/engine/internal/stats"
	"github.com/syncvault/engine/internal/syncqueue"
	"github.com/syncvault/engine/models"
)

const publishBuffer = 8

// Dependencies bundles every collaborator the Facade composes. Each field
// is already fully constructed by the host (or cmd/syncdemo, cmd/syncserver)
// before calling New; the Facade itself never constructs transport, crypto,
// or storage layers.
type Dependencies struct {
	SecureStore     securestore.SecureStore
	AccountManager  account.Manager
	Broker          connect.Broker
	Scheduler       scheduler.Scheduler
	Queue           syncqueue.Queue
	Stats           stats.DailyStats
	SyncEnabledPath string // presence of this file is the persisted syncEnabled flag
}

type facade struct {
	secureStore    securestore.SecureStore
	accountManager account.Manager
	broker         connect.Broker
	scheduler      scheduler.Scheduler
	queue          syncqueue.Queue
	stats          stats.DailyStats
	syncEnabled    string

	mu      sync.Mutex
	account *models.Account

	authState  chan models.AuthState
	inProgress chan bool
	flagLevel  chan models.SyncSupportLevel
	unauthErr  chan error

	done chan struct{}
	wg   sync.WaitGroup
}

// New constructs the [Facade], performing the construction-time
// initialization spec.md §4.11 describes: read the persisted syncEnabled
// flag; if absent, force authState=inactive and drop any stale account;
// otherwise load the account from SecureStore and adopt its persisted
// state.
func New(deps Dependencies) (Facade, error) {
	f := &facade{
		secureStore:    deps.SecureStore,
		accountManager: deps.AccountManager,
		broker:         deps.Broker,
		scheduler:      deps.Scheduler,
		queue:          deps.Queue,
		stats:          deps.Stats,
		syncEnabled:    deps.SyncEnabledPath,
		authState:      make(chan models.AuthState, publishBuffer),
		inProgress:     make(chan bool, publishBuffer),
		flagLevel:      make(chan models.SyncSupportLevel, publishBuffer),
		unauthErr:      make(chan error, publishBuffer),
		done:           make(chan struct{}),
	}

	enabled, err := f.readSyncEnabled()
	if err != nil {
		return nil, err
	}

	if !enabled {
		f.scheduler.CancelAndSuspend()
		if err := f.secureStore.Remove(); err != nil {
			return nil, err
		}
		f.publishAuthState(models.AuthStateInactive)
	} else {
		acc, err := f.secureStore.Account()
		if err != nil {
			return nil, err
		}
		if acc == nil {
			f.publishAuthState(models.AuthStateInactive)
		} else {
			f.mu.Lock()
			f.account = acc
			f.mu.Unlock()
			f.queue.SetSecretKey(acc.SecretKey)
			f.publishAuthState(acc.AuthState)
			if acc.AuthState != models.AuthStateActive && acc.AuthState != models.AuthStateAddingNewDevice {
				f.scheduler.CancelAndSuspend()
			}
		}
	}

	f.wg.Add(2)
	go f.forwardSync()
	go f.forwardQueueErrors()

	return f, nil
}

func (f *facade) readSyncEnabled() (bool, error) {
	_, err := os.Stat(f.syncEnabled)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (f *facade) setSyncEnabled(enabled bool) error {
	if !enabled {
		err := os.Remove(f.syncEnabled)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(f.syncEnabled, []byte{}, 0o600)
}

// forwardSync relays the Scheduler's start_sync signal into the SyncQueue
// for as long as the account is in a state that can sync. This is the
// Facade's end of "owns lifecycle of SyncQueue tied to account authState".
func (f *facade) forwardSync() {
	defer f.wg.Done()
	for {
		select {
		case <-f.done:
			return
		case <-f.scheduler.StartSync():
			f.mu.Lock()
			active := f.account != nil && (f.account.AuthState == models.AuthStateActive || f.account.AuthState == models.AuthStateAddingNewDevice)
			f.mu.Unlock()
			if active {
				f.queue.StartSync()
			}
		}
	}
}

func (f *facade) forwardQueueErrors() {
	defer f.wg.Done()
	for {
		select {
		case <-f.done:
			return
		case inProgress := <-f.queue.IsSyncInProgress():
			f.publishBool(inProgress)
			if inProgress {
				f.stats.RecordSyncAttempt()
			}
		case err := <-f.queue.SyncHTTPRequestError():
			f.recordStatsForError(err)
			f.handleAPIError(err)
		}
	}
}

// handleAPIError implements spec.md §4.11's "on any API error, if it is
// UnexpectedStatusCode(401), removes the account and raises
// UnauthenticatedWhileLoggedIn; other errors re-thrown" — here "re-thrown"
// means published unchanged rather than causing a teardown.
func (f *facade) handleAPIError(err error) {
	if !isUnauthorized(err) {
		f.publishUnauthenticated(err)
		return
	}

	f.scheduler.CancelAndSuspend()
	_ = f.secureStore.Remove()
	_ = f.setSyncEnabled(false)

	f.mu.Lock()
	f.account = nil
	f.mu.Unlock()

	removed := models.NewAccountRemoved("unauthenticated")
	f.publishAuthState(models.AuthStateInactive)
	f.publishUnauthenticated(removed)
}

// recordStatsForError buckets a whole-cycle abort by its status code. The
// SyncQueue does not propagate which feature originated a cycle-aborting
// error (only 401s abort a cycle, and any feature can trigger one), so
// this records against a cycle-wide bucket rather than a specific feature.
func (f *facade) recordStatsForError(err error) {
	var se *models.SyncError
	if errors.As(err, &se) && se.StatusCode != 0 {
		f.stats.RecordServerError("_cycle", se.StatusCode)
	}
}

func isUnauthorized(err error) bool {
	var se *models.SyncError
	if errors.As(err, &se) {
		return se.Code == models.CodeUnexpectedStatusCode && se.StatusCode == 401
	}
	return false
}

func (f *facade) CreateAccount(ctx context.Context, deviceName, deviceType string) (models.RecoveryKey, error) {
	acc, recovery, err := f.accountManager.CreateAccount(ctx, deviceName, deviceType)
	if err != nil {
		return models.RecoveryKey{}, err
	}
	if err := f.adoptAccount(acc, true); err != nil {
		return models.RecoveryKey{}, err
	}
	return recovery, nil
}

func (f *facade) Login(ctx context.Context, recoveryKey models.RecoveryKey, deviceName, deviceType string) error {
	acc, _, err := f.accountManager.Login(ctx, recoveryKey, deviceName, deviceType)
	if err != nil {
		return err
	}
	return f.adoptAccount(acc, true)
}

// adoptAccount persists acc, updates in-memory state, pushes its secret
// key to the SyncQueue, re-enables the Scheduler, and publishes the new
// auth state. needsRemoteDataFetch forces every feature back to initial
// sync (true for a brand-new device, false for a token refresh).
func (f *facade) adoptAccount(acc models.Account, needsRemoteDataFetch bool) error {
	if err := f.secureStore.Persist(acc); err != nil {
		return err
	}
	if err := f.setSyncEnabled(true); err != nil {
		return err
	}

	f.mu.Lock()
	f.account = &acc
	f.mu.Unlock()

	f.queue.SetSecretKey(acc.SecretKey)
	if err := f.queue.PrepareDataModelsForSync(context.Background(), needsRemoteDataFetch); err != nil {
		return err
	}

	f.scheduler.Resume()
	f.publishAuthState(acc.AuthState)
	f.scheduler.NotifyImmediate()
	return nil
}

func (f *facade) RemoteConnect(ctx context.Context, deviceName, deviceType string) (models.ConnectCode, <-chan error, error) {
	info, code, err := f.broker.PrepareForConnect(uuid.NewString())
	if err != nil {
		return models.ConnectCode{}, nil, err
	}

	results := f.broker.StartPolling(info)
	loginErr := make(chan error, 1)

	go func() {
		res := <-results
		if res.Err != nil {
			loginErr <- res.Err
			return
		}
		loginErr <- f.Login(ctx, res.RecoveryKey, deviceName, deviceType)
	}()

	return code, loginErr, nil
}

func (f *facade) TransmitRecoveryKey(ctx context.Context, code models.ConnectCode) error {
	f.mu.Lock()
	acc := f.account
	f.mu.Unlock()
	if acc == nil {
		return models.NewSyncError(models.CodeAccountNotFound, "no local account to recover from", nil)
	}

	recovery := models.RecoveryKey{UserID: acc.UserID, PrimaryKey: acc.PrimaryKey}
	return f.broker.TransmitRecoveryKey(ctx, code, recovery)
}

func (f *facade) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	acc := f.account
	f.mu.Unlock()
	if acc == nil {
		return nil
	}

	f.scheduler.CancelAndSuspend()
	err := f.accountManager.Logout(ctx, acc.DeviceID, acc.Token)

	if rmErr := f.secureStore.Remove(); rmErr != nil && err == nil {
		err = rmErr
	}
	_ = f.setSyncEnabled(false)

	f.mu.Lock()
	f.account = nil
	f.mu.Unlock()

	f.publishAuthState(models.AuthStateInactive)
	return err
}

func (f *facade) DisconnectDevice(ctx context.Context, deviceID string) error {
	f.mu.Lock()
	acc := f.account
	f.mu.Unlock()
	if acc == nil {
		return models.NewSyncError(models.CodeAccountNotFound, "no local account", nil)
	}
	return f.accountManager.Logout(ctx, deviceID, acc.Token)
}

func (f *facade) FetchDevices(ctx context.Context) ([]models.Device, error) {
	f.mu.Lock()
	acc := f.account
	f.mu.Unlock()
	if acc == nil {
		return nil, models.NewSyncError(models.CodeAccountNotFound, "no local account", nil)
	}
	return f.accountManager.FetchDevices(ctx, *acc)
}

func (f *facade) UpdateDeviceName(ctx context.Context, deviceName string) error {
	f.mu.Lock()
	acc := f.account
	f.mu.Unlock()
	if acc == nil {
		return models.NewSyncError(models.CodeAccountNotFound, "no local account", nil)
	}

	refreshed, err := f.accountManager.RefreshToken(ctx, *acc, deviceName)
	if err != nil {
		return err
	}
	return f.adoptAccount(refreshed, false)
}

func (f *facade) DeleteAccount(ctx context.Context) error {
	f.mu.Lock()
	acc := f.account
	f.mu.Unlock()
	if acc == nil {
		return nil
	}

	f.scheduler.CancelAndSuspend()
	err := f.accountManager.DeleteAccount(ctx, *acc)

	if rmErr := f.secureStore.Remove(); rmErr != nil && err == nil {
		err = rmErr
	}
	_ = f.setSyncEnabled(false)

	f.mu.Lock()
	f.account = nil
	f.mu.Unlock()

	f.publishAuthState(models.AuthStateInactive)
	return err
}

func (f *facade) UpdateServerEnvironment(ctx context.Context, environment string) error {
	// Changing environment invalidates the local account per spec.md §6:
	// tokens and device registrations are server-specific.
	return f.Disconnect(ctx)
}

func (f *facade) SetFeatureFlags(cfg models.RemotePrivacyConfig) {
	level := cfg.Resolve()
	select {
	case f.flagLevel <- level:
	default:
	}
}

func (f *facade) NotifyDataChanged()  { f.scheduler.NotifyDataChanged() }
func (f *facade) NotifyAppLifecycle() { f.scheduler.NotifyAppLifecycle() }

func (f *facade) AuthState() <-chan models.AuthState               { return f.authState }
func (f *facade) IsSyncInProgress() <-chan bool                    { return f.inProgress }
func (f *facade) SyncSupportLevel() <-chan models.SyncSupportLevel { return f.flagLevel }
func (f *facade) UnauthenticatedWhileLoggedIn() <-chan error       { return f.unauthErr }

func (f *facade) publishAuthState(state models.AuthState) {
	select {
	case f.authState <- state:
	default:
	}
}

func (f *facade) publishBool(v bool) {
	select {
	case f.inProgress <- v:
	default:
	}
}

func (f *facade) publishUnauthenticated(err error) {
	select {
	case f.unauthErr <- err:
	default:
	}
}

func (f *facade) Close() {
	close(f.done)
	f.wg.Wait()
	f.scheduler.Close()
	f.queue.Close()
}
