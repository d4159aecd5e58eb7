package internal

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Snapshot is one load of the three collections. It is built once by
// LoadSnapshot and treated as read-only afterwards.
type Snapshot struct {
	ID            string
	Source        string
	LoadedAt      time.Time
	Conversations []Conversation
	Messages      []Message
	Issues        []Issue // newest first
	Rejected      []*ValidationError
}

// LoadOptions controls how fetched rows are validated
type LoadOptions struct {
	// Strict fails the load on the first malformed row instead of dropping it
	Strict bool
}

// LoadSnapshot fetches conversations, messages and issues concurrently and
// validates every row. Any failed or absent collection fails the whole load
// with a *FetchError, so nothing downstream sees a partial snapshot.
func LoadSnapshot(ctx context.Context, src Source, opts LoadOptions) (*Snapshot, error) {
	var (
		rawConversations []RawConversation
		rawMessages      []RawMessage
		rawIssues        []RawIssue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := src.FetchConversations(gctx)
		if err = checkFetch(src, CollectionConversations, rows == nil, err); err != nil {
			return err
		}
		rawConversations = rows
		return nil
	})
	g.Go(func() error {
		rows, err := src.FetchMessages(gctx)
		if err = checkFetch(src, CollectionMessages, rows == nil, err); err != nil {
			return err
		}
		rawMessages = rows
		return nil
	})
	g.Go(func() error {
		rows, err := src.FetchIssues(gctx)
		if err = checkFetch(src, CollectionIssues, rows == nil, err); err != nil {
			return err
		}
		rawIssues = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:       uuid.NewString(),
		Source:   src.Name(),
		LoadedAt: time.Now().UTC(),
	}

	var err error
	if snap.Conversations, err = validateRows(snap, rawConversations, ValidateConversation, opts.Strict); err != nil {
		return nil, err
	}
	if snap.Messages, err = validateRows(snap, rawMessages, ValidateMessage, opts.Strict); err != nil {
		return nil, err
	}
	if snap.Issues, err = validateRows(snap, rawIssues, ValidateIssue, opts.Strict); err != nil {
		return nil, err
	}

	sort.SliceStable(snap.Issues, func(i, j int) bool {
		return snap.Issues[i].CreatedAt.After(snap.Issues[j].CreatedAt)
	})

	LogDebug("Loaded snapshot %s from %s: %d conversations, %d messages, %d issues (%d rows rejected)",
		snap.ID, snap.Source, len(snap.Conversations), len(snap.Messages), len(snap.Issues), len(snap.Rejected))
	return snap, nil
}

func checkFetch(src Source, collection string, absent bool, err error) error {
	if err != nil {
		return &FetchError{Source: src.Name(), Collection: collection, Err: err}
	}
	if absent {
		return &FetchError{Source: src.Name(), Collection: collection, Err: ErrAbsentCollection}
	}
	return nil
}

func validateRows[R any, T any](snap *Snapshot, rows []R, validate func(R) (T, error), strict bool) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := validate(row)
		if err != nil {
			if strict {
				return nil, err
			}
			var verr *ValidationError
			if errors.As(err, &verr) {
				snap.Rejected = append(snap.Rejected, verr)
			}
			LogWarn("Skipping row: %v", err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
