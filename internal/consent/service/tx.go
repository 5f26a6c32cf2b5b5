package service

import (
	"context"
	"time"

	"consentintel/internal/consent/metrics"
	pkgerrors "consentintel/pkg/domain-errors"
	platformsync "consentintel/pkg/platform/sync"
)

// ConsentStoreTx provides a transactional boundary for consent store mutations.
// Implementations may wrap a database transaction or, in-memory, a lock.
type ConsentStoreTx interface {
	// RunInTx serializes fn against other transactions for the same app. fn
	// receives the transaction context, which carries the transaction deadline.
	RunInTx(ctx context.Context, appID string, fn func(ctx context.Context, store Store) error) error
	// RunExclusive waits for every in-flight per-app transaction and blocks new ones.
	RunExclusive(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// defaultConsentTxTimeout is the maximum duration for a consent transaction.
const defaultConsentTxTimeout = 5 * time.Second

type shardedConsentTx struct {
	mu      *platformsync.ShardedMutex
	store   Store
	timeout time.Duration
	metrics *metrics.Metrics
}

func newShardedConsentTx(store Store, m *metrics.Metrics) *shardedConsentTx {
	return &shardedConsentTx{
		mu:      platformsync.NewShardedMutex(),
		store:   store,
		timeout: defaultConsentTxTimeout,
		metrics: m,
	}
}

func (t *shardedConsentTx) RunInTx(ctx context.Context, appID string, fn func(ctx context.Context, store Store) error) error {
	return t.run(ctx, func() { t.mu.Lock(appID) }, func() { t.mu.Unlock(appID) }, fn)
}

func (t *shardedConsentTx) RunExclusive(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	return t.run(ctx, t.mu.LockAll, t.mu.UnlockAll, fn)
}

func (t *shardedConsentTx) run(ctx context.Context, lock, unlock func(), fn func(ctx context.Context, store Store) error) error {
	if err := ctx.Err(); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	lockStart := time.Now()
	lock()
	if t.metrics != nil {
		t.metrics.ObserveShardLockWait(time.Since(lockStart).Seconds())
	}
	defer unlock()

	// The wait may have outlived the caller.
	if err := ctx.Err(); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx, t.store)
}
