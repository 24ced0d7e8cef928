// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connect

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/sethvargo/go-retry"

	"github.com/syncvault/engine/internal/crypto"
	"github.com/syncvault/engine/internal/transport"
	"github.com/syncvault/engine/models"
)

type broker struct {
	client  transport.Client
	crypter crypto.Crypter
	cfg     Config

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBroker constructs a [Broker] wired to client and crypter, polling
// per cfg.
func NewBroker(client transport.Client, crypter crypto.Crypter, cfg Config) Broker {
	return &broker{client: client, crypter: crypter, cfg: cfg}
}

func (b *broker) PrepareForConnect(deviceID string) (models.ConnectInfo, models.ConnectCode, error) {
	info, err := b.crypter.PrepareForConnect(deviceID)
	if err != nil {
		return models.ConnectInfo{}, models.ConnectCode{}, fmt.Errorf("prepare for connect: %w", err)
	}

	code := models.ConnectCode{DeviceID: info.DeviceID, PublicKey: info.PublicKey}
	return info, code, nil
}

func (b *broker) TransmitRecoveryKey(ctx context.Context, code models.ConnectCode, recovery models.RecoveryKey) error {
	encoded, err := recovery.Encode()
	if err != nil {
		return fmt.Errorf("encode recovery key: %w", err)
	}

	sealed, err := b.crypter.Seal([]byte(encoded), code.PublicKey)
	if err != nil {
		return fmt.Errorf("seal recovery key: %w", err)
	}

	payload := models.ConnectPayload{
		DeviceID:       code.DeviceID,
		SealedRecovery: base64.StdEncoding.EncodeToString(sealed),
	}

	return b.client.PostConnect(ctx, payload)
}

// StartPolling launches the background poll goroutine, grounded on the
// teacher's clientSyncJob ticker-goroutine shape (mutex-guarded
// cancel func + WaitGroup), but for a bounded-attempt poll via
// sethvargo/go-retry instead of an infinite ticker.
func (b *broker) StartPolling(info models.ConnectInfo) <-chan PollResult {
	b.StopPolling()

	b.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.wg.Add(1)
	b.mu.Unlock()

	result := make(chan PollResult, 1)

	go func() {
		defer b.wg.Done()
		defer close(result)

		var recovery models.RecoveryKey
		backoff := retry.WithMaxRetries(b.cfg.MaxPollAttempts, retry.NewConstant(b.cfg.PollInterval))

		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			payload, err := b.client.GetConnect(ctx, info.DeviceID)
			if err != nil {
				return err
			}
			if payload == nil {
				return retry.RetryableError(errNotReady)
			}

			sealed, err := base64.StdEncoding.DecodeString(payload.SealedRecovery)
			if err != nil {
				return fmt.Errorf("decode sealed recovery payload: %w", err)
			}

			plain, err := b.crypter.Unseal(sealed, info)
			if err != nil {
				return fmt.Errorf("unseal recovery payload: %w", err)
			}

			decoded, err := models.DecodeRecoveryKey(string(plain))
			if err != nil {
				return fmt.Errorf("decode recovery key: %w", err)
			}
			recovery = decoded
			return nil
		})

		result <- PollResult{RecoveryKey: recovery, Err: err}
	}()

	return result
}

func (b *broker) StopPolling() {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	b.wg.Wait()
}
