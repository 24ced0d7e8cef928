// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncqueue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/syncvault/engine/internal/codec"
	"github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/internal/provider"
	"github.com/syncvault/engine/internal/transport"
	"github.com/syncvault/engine/models"
)

// queueState is the queue-wide state machine (spec.md §4.9).
type queueState int

const (
	stateIdle queueState = iota
	stateRunning
	stateCancelled
	stateSuspended
	stateTerminal
)

const publishBuffer = 8

type queue struct {
	client  transport.Client
	crypter crypto.Crypter

	mu        sync.Mutex
	providers []provider.Provider
	state     queueState
	cycleStop context.CancelFunc
	secretKey []byte

	// pending is the capacity-1 coalescing trigger buffer: StartSync
	// sends to it non-blockingly so N rapid triggers during an active
	// cycle collapse into exactly one pending cycle. It is the only
	// channel the worker loop reads triggers from.
	pending chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup

	inProgress chan bool
	finished   chan models.SyncResult
	httpErr    chan error
	updated    chan string
}

// NewQueue constructs a [Queue] over the given providers, driving HTTP
// requests through client and encryption through crypter. The queue's
// worker goroutine starts immediately and runs until Close.
func NewQueue(client transport.Client, crypter crypto.Crypter, providers []provider.Provider) Queue {
	q := &queue{
		client:     client,
		crypter:    crypter,
		providers:  providers,
		pending:    make(chan struct{}, 1),
		done:       make(chan struct{}),
		inProgress: make(chan bool, publishBuffer),
		finished:   make(chan models.SyncResult, publishBuffer),
		httpErr:    make(chan error, publishBuffer),
		updated:    make(chan string, publishBuffer),
	}

	q.wg.Add(1)
	go q.run()

	return q
}

func (q *queue) run() {
	defer q.wg.Done()

	for {
		select {
		case <-q.done:
			return
		case <-q.pending:
			q.mu.Lock()
			suspended := q.state == stateSuspended || q.state == stateTerminal
			q.mu.Unlock()
			if suspended {
				continue
			}
			q.runCycle()
		}
	}
}

func (q *queue) StartSync() {
	q.mu.Lock()
	skip := q.state == stateSuspended || q.state == stateTerminal
	q.mu.Unlock()
	if skip {
		return
	}

	select {
	case q.pending <- struct{}{}:
	default:
		// a cycle is already pending; this trigger coalesces with it.
	}
}

func (q *queue) CancelOngoingAndSuspend() {
	q.mu.Lock()
	cancel := q.cycleStop
	if q.state != stateTerminal {
		q.state = stateSuspended
	}
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (q *queue) Resume() {
	q.mu.Lock()
	if q.state == stateSuspended {
		q.state = stateIdle
	}
	q.mu.Unlock()
}

func (q *queue) PrepareDataModelsForSync(ctx context.Context, needsRemoteDataFetch bool) error {
	q.mu.Lock()
	providers := append([]provider.Provider(nil), q.providers...)
	q.mu.Unlock()

	setupState := models.SetupStateReadyToSync
	if needsRemoteDataFetch {
		setupState = models.SetupStateNeedsRemoteDataFetch
	}

	for _, p := range providers {
		if err := p.Register(ctx, setupState); err != nil {
			return err
		}
	}
	return nil
}

func (q *queue) SetSecretKey(secretKey []byte) {
	q.mu.Lock()
	q.secretKey = secretKey
	q.mu.Unlock()
}

func (q *queue) IsSyncInProgress() <-chan bool           { return q.inProgress }
func (q *queue) SyncDidFinish() <-chan models.SyncResult { return q.finished }
func (q *queue) SyncHTTPRequestError() <-chan error      { return q.httpErr }
func (q *queue) SyncDidUpdateData() <-chan string        { return q.updated }

func (q *queue) Close() {
	q.mu.Lock()
	q.state = stateTerminal
	cancel := q.cycleStop
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	close(q.done)
	q.wg.Wait()
}

type featureOutcome struct {
	feature string
	outcome models.FeatureSyncOutcome
	err     error
}

func (q *queue) runCycle() {
	q.mu.Lock()
	q.state = stateRunning
	providers := append([]provider.Provider(nil), q.providers...)
	secretKey := q.secretKey
	q.mu.Unlock()

	for _, p := range providers {
		p.SetSecretKey(secretKey)
	}

	q.publishBool(q.inProgress, true)
	defer q.publishBool(q.inProgress, false)

	ctx, cancel := context.WithCancel(context.Background())
	q.mu.Lock()
	q.cycleStop = cancel
	q.mu.Unlock()
	defer func() {
		cancel()
		q.mu.Lock()
		q.cycleStop = nil
		if q.state == stateRunning {
			q.state = stateIdle
		} else if q.state == stateCancelled {
			q.state = stateSuspended
		}
		q.mu.Unlock()
	}()

	results := make(chan featureOutcome, len(providers))
	var wg sync.WaitGroup
	for _, p := range providers {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := q.syncFeature(ctx, p)
			if isUnauthenticated(err) {
				q.mu.Lock()
				q.state = stateCancelled
				q.mu.Unlock()
				cancel()
			}
			results <- featureOutcome{feature: p.Feature().Name, outcome: outcome, err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	syncResult := make(models.SyncResult)
	perFeatureErrors := make(map[string]error)
	var unauthenticated error

	for r := range results {
		if r.err != nil {
			perFeatureErrors[r.feature] = r.err
			if isUnauthenticated(r.err) {
				unauthenticated = r.err
			}
			continue
		}
		syncResult[r.feature] = r.outcome
	}

	if unauthenticated != nil {
		q.publishErr(unauthenticated)
		return
	}

	if len(perFeatureErrors) > 0 {
		byFeature := make(map[string]provider.Provider, len(providers))
		for _, p := range providers {
			byFeature[p.Feature().Name] = p
		}
		for feature, err := range perFeatureErrors {
			if p, ok := byFeature[feature]; ok {
				p.HandleSyncError(err)
			}
		}
	}

	q.publishResult(syncResult)
	for feature, outcome := range syncResult {
		if outcome.Kind != models.SyncResultNoData {
			q.publishFeature(feature)
		}
	}
}

func isUnauthenticated(err error) bool {
	if err == nil {
		return false
	}
	var se *models.SyncError
	if errors.As(err, &se) {
		return se.Code == models.CodeUnexpectedStatusCode && se.StatusCode == http.StatusUnauthorized
	}
	return false
}

func (q *queue) syncFeature(ctx context.Context, p provider.Provider) (models.FeatureSyncOutcome, error) {
	state, err := p.FeatureSetupState(ctx)
	if err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	feature := p.Feature().Name
	since, err := p.LastServerTimestamp(ctx)
	if err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	if state == models.SetupStateNeedsRemoteDataFetch {
		return q.initialSync(ctx, p, feature, since)
	}
	return q.regularSync(ctx, p, feature, since)
}

func (q *queue) initialSync(ctx context.Context, p provider.Provider, feature, since string) (models.FeatureSyncOutcome, error) {
	path, err := codec.BuildGetPath([]string{feature}, map[string]string{feature: since})
	if err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	envelope, err := q.client.GetSync(ctx, path)
	if err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	clientTS := time.Now().UTC().Format(time.RFC3339)
	raw, ok := envelope[feature]
	if !ok {
		if err := p.UpdateSyncTimestamps(ctx, since, time.Now()); err != nil {
			return models.FeatureSyncOutcome{}, err
		}
		return models.FeatureSyncOutcome{Kind: models.SyncResultNoData}, nil
	}

	received, err := syncablesFromRaw(feature, raw)
	if err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	if err := p.HandleInitialSyncResponse(ctx, received, clientTS, raw.LastModified, q.crypter); err != nil {
		return models.FeatureSyncOutcome{}, err
	}
	if err := p.UpdateSyncTimestamps(ctx, raw.LastModified, time.Now()); err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	return outcomeFor(len(received) > 0), nil
}

func (q *queue) regularSync(ctx context.Context, p provider.Provider, feature, since string) (models.FeatureSyncOutcome, error) {
	sent, err := p.FetchChangedObjects(ctx, q.crypter)
	if err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	clientTS := time.Now().UTC().Format(time.RFC3339)

	var envelope map[string]models.RawFeatureResponse
	if len(sent) > 0 {
		body, err := codec.BuildPatchBody(clientTS, map[string]models.FeaturePatchBody{
			feature: {Updates: sent, ModifiedSince: since},
		})
		if err != nil {
			return models.FeatureSyncOutcome{}, err
		}

		gzipped := codec.ShouldCompress(body)
		if gzipped {
			body, err = transport.CompressBody(body)
			if err != nil {
				return models.FeatureSyncOutcome{}, err
			}
		}

		envelope, err = q.client.PatchSync(ctx, body, gzipped)
		if err != nil {
			return models.FeatureSyncOutcome{}, err
		}
	} else {
		path, err := codec.BuildGetPath([]string{feature}, map[string]string{feature: since})
		if err != nil {
			return models.FeatureSyncOutcome{}, err
		}
		envelope, err = q.client.GetSync(ctx, path)
		if err != nil {
			return models.FeatureSyncOutcome{}, err
		}
	}

	raw, ok := envelope[feature]
	if !ok {
		if err := p.UpdateSyncTimestamps(ctx, since, time.Now()); err != nil {
			return models.FeatureSyncOutcome{}, err
		}
		return outcomeFor(len(sent) > 0), nil
	}

	received, err := syncablesFromRaw(feature, raw)
	if err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	if err := p.HandleSyncResponse(ctx, sent, received, clientTS, raw.LastModified, q.crypter); err != nil {
		return models.FeatureSyncOutcome{}, err
	}
	if err := p.UpdateSyncTimestamps(ctx, raw.LastModified, time.Now()); err != nil {
		return models.FeatureSyncOutcome{}, err
	}

	return outcomeFor(len(sent) > 0 || len(received) > 0), nil
}

// syncablesFromRaw decodes a feature's opaque response entries back into
// Syncables. The reference server round-trips exactly the Syncable shape
// it was given on PATCH, so entries decode directly into models.Syncable.
func syncablesFromRaw(feature string, raw models.RawFeatureResponse) ([]models.Syncable, error) {
	out := make([]models.Syncable, 0, len(raw.Entries))
	for _, entry := range raw.Entries {
		var s models.Syncable
		if err := json.Unmarshal(entry, &s); err != nil {
			return nil, models.NewSyncError(models.CodeInvalidDataInResponse, "decode entry for "+feature, err)
		}
		s.FeatureName = feature
		out = append(out, s)
	}
	return out, nil
}

// outcomeFor reports SomeNewData when the cycle moved any data for this
// feature. The core never inspects opaque Syncable payloads, so it cannot
// enumerate individual modified/deleted ids the way spec.md §4.9's step 6
// describes for a feature that can report them; SomeNewData is the kind
// modeled in models.sync.go precisely for "changes happened but the
// DataProvider did not break them into discrete ids".
func outcomeFor(hadActivity bool) models.FeatureSyncOutcome {
	if !hadActivity {
		return models.FeatureSyncOutcome{Kind: models.SyncResultNoData}
	}
	return models.FeatureSyncOutcome{Kind: models.SyncResultSomeNewData}
}

func (q *queue) publishBool(ch chan bool, v bool) {
	select {
	case ch <- v:
	default:
	}
}

func (q *queue) publishResult(r models.SyncResult) {
	select {
	case q.finished <- r:
	default:
	}
}

func (q *queue) publishErr(err error) {
	select {
	case q.httpErr <- err:
	default:
	}
}

func (q *queue) publishFeature(feature string) {
	select {
	case q.updated <- feature:
	default:
	}
}
