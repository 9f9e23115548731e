package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

const (
	defaultPollInterval    = time.Second
	defaultMaxPollFailures = 3
)

// FirebaseOptions configures the Firebase Realtime Database store.
type FirebaseOptions struct {
	DatabaseURL     string
	CredentialsPath string
	PollInterval    time.Duration
	MaxPollFailures int
}

// firebaseStore implements RealtimeStore on the Firebase Realtime Database REST API.
// The admin SDK has no streaming listener, so subscriptions poll with ETags and only
// emit a snapshot when the collection changed.
type firebaseStore struct {
	client          *db.Client
	pushIDs         *pushIDGenerator
	pollInterval    time.Duration
	maxPollFailures int
	logger          *slog.Logger
}

// NewFirebaseStore connects to the database at opts.DatabaseURL.
func NewFirebaseStore(ctx context.Context, opts FirebaseOptions, logger *slog.Logger) (repository.RealtimeStore, error) {
	if opts.DatabaseURL == "" {
		return nil, errors.New("firebase database URL is required")
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: opts.DatabaseURL}, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get database client")
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	maxPollFailures := opts.MaxPollFailures
	if maxPollFailures <= 0 {
		maxPollFailures = defaultMaxPollFailures
	}

	logger.Info("Firebase realtime store initialized",
		slog.String("database_url", opts.DatabaseURL),
		slog.Duration("poll_interval", pollInterval),
	)

	return &firebaseStore{
		client:          client,
		pushIDs:         newPushIDGenerator(time.Now),
		pollInterval:    pollInterval,
		maxPollFailures: maxPollFailures,
		logger:          logger,
	}, nil
}

// Subscribe implements repository.RealtimeStore.
func (s *firebaseStore) Subscribe(ctx context.Context, path string) (repository.Subscription, error) {
	if _, err := checkPath(path); err != nil {
		return nil, err
	}

	sub := newSubscription(ctx, path, nil)
	go s.poll(sub, s.client.NewRef(path))

	return sub, nil
}

// poll fetches the collection until the subscription closes. Consecutive failures beyond
// maxPollFailures terminate the subscription; the engine above does not resubscribe.
func (s *firebaseStore) poll(sub *subscription, ref *db.Ref) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	var (
		etag     string
		failures int
	)

	for {
		var children map[string]json.RawMessage
		var (
			changed = true
			err     error
		)
		if etag == "" {
			etag, err = ref.GetWithETag(sub.ctx, &children)
		} else {
			changed, etag, err = ref.GetIfChanged(sub.ctx, etag, &children)
		}

		switch {
		case sub.ctx.Err() != nil:
			return
		case err != nil:
			failures++
			s.logger.Warn("Realtime poll failed",
				slog.String("path", ref.Path),
				slog.Int("failures", failures),
				slog.Any("error", err),
			)
			if failures >= s.maxPollFailures {
				sub.fail(errors.Wrapf(errors.Join(repository.ErrStoreUnavailable, err), "subscribe %s", ref.Path))

				return
			}
			etag = ""
		case changed:
			failures = 0
			sub.offer(buildSnapshot(sub.path, children))
		default:
			failures = 0
		}

		select {
		case <-sub.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Set implements repository.RealtimeStore.
func (s *firebaseStore) Set(ctx context.Context, path string, value any) error {
	if _, err := checkPath(path); err != nil {
		return err
	}

	if value == nil {
		return s.Remove(ctx, path)
	}

	if err := s.client.NewRef(path).Set(ctx, value); err != nil {
		return storeError(err, "set %s", path)
	}

	return nil
}

// Update implements repository.RealtimeStore. The map is sent as one multi-location PATCH
// against the root, which the database applies atomically.
func (s *firebaseStore) Update(ctx context.Context, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}

	paths := slices.Sorted(maps.Keys(values))
	for i, path := range paths {
		if _, err := checkPath(path); err != nil {
			return err
		}
		if i > 0 && isAncestor(paths[i-1], path) {
			return errors.Wrapf(repository.ErrInvalidPath, "update paths %q and %q overlap", paths[i-1], path)
		}
	}

	if err := s.client.NewRef("/").Update(ctx, values); err != nil {
		return storeError(err, "update %d paths", len(values))
	}

	return nil
}

// Remove implements repository.RealtimeStore.
func (s *firebaseStore) Remove(ctx context.Context, path string) error {
	if _, err := checkPath(path); err != nil {
		return err
	}

	if err := s.client.NewRef(path).Delete(ctx); err != nil {
		return storeError(err, "remove %s", path)
	}

	return nil
}

// Push implements repository.RealtimeStore. Keys are generated locally like the client SDKs
// do; the admin SDK's Push would write an empty string node.
func (s *firebaseStore) Push(_ context.Context, collection string) (string, error) {
	if _, err := checkPath(collection); err != nil {
		return "", err
	}

	return s.pushIDs.Next(), nil
}

// Transaction implements repository.RealtimeStore on the ETag compare-and-set transaction
// of the admin SDK, which re-runs fn on conflicts.
func (s *firebaseStore) Transaction(ctx context.Context, path string, fn repository.TransactionFunc) error {
	if _, err := checkPath(path); err != nil {
		return err
	}

	var fnErr error
	err := s.client.NewRef(path).Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var current json.RawMessage
		if err := node.Unmarshal(&current); err != nil {
			return nil, errors.Wrap(err, "decode transaction node")
		}
		if isNull(current) {
			current = nil
		}

		next, err := fn(current)
		if err != nil {
			fnErr = err

			return nil, err
		}
		if len(next) == 0 {
			return nil, nil
		}

		return next, nil
	})

	switch {
	case err == nil:
		return nil
	case fnErr != nil && errors.Is(err, fnErr):
		return fnErr
	case strings.Contains(err.Error(), "transaction aborted"):
		return errors.Wrapf(repository.ErrTransactionAborted, "transaction %s: %v", path, err)
	default:
		return storeError(err, "transaction %s", path)
	}
}

func buildSnapshot(path string, children map[string]json.RawMessage) repository.Snapshot {
	keys := slices.Collect(maps.Keys(children))
	sortKeys(keys)

	snapshot := repository.Snapshot{Path: path, Entries: make([]repository.Entry, 0, len(keys))}
	for _, key := range keys {
		snapshot.Entries = append(snapshot.Entries, repository.Entry{Key: key, Value: children[key]})
	}

	return snapshot
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func storeError(err error, format string, args ...any) error {
	return errors.Wrapf(errors.Join(repository.ErrStoreUnavailable, err), format, args...)
}
