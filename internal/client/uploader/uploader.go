// Package uploader implements a bounded-concurrency queue for property image
// uploads. Items move through pending -> uploading -> completed/failed, at
// most MaxConcurrent uploads run at once, each upload has a hard deadline,
// failed items can be retried, and in-flight items can be cancelled. The
// queue broadcasts read-only snapshots to progress subscribers on every
// state change and hands completed image URLs to completion subscribers.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elliot09alderson/estate-client/internal/client/transport"
	"github.com/elliot09alderson/estate-client/internal/logging"
)

// TimeoutMessage is the user-facing error recorded on an item whose upload
// exceeded the queue deadline.
const TimeoutMessage = "Upload timeout - please try again"

const (
	defaultMaxConcurrent = 3
	defaultTimeout       = 15 * time.Second
)

// Status is the lifecycle state of a queue item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// File is the binary payload of one queue item.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Item is a read-only snapshot of one queued upload. Each item carries
// exactly one file, so progress, retry and cancel act per file even when
// several files were enqueued together.
type Item struct {
	ID       string
	OwnerID  string
	File     File
	Status   Status
	Progress int
	Error    string
	URLs     []string
}

// UploadFunc performs the actual transfer for one item. The queue passes a
// single file per call; the slice shape matches the backend's multi-file
// endpoint. It reports byte progress through the callback and returns the
// stored file URLs on success. The context carries the queue deadline and is
// cancelled when the item is cancelled.
type UploadFunc func(ctx context.Context, ownerID string, files []File, progress func(sent, total int64)) ([]string, error)

// Options configure a Queue. Zero values fall back to defaults.
type Options struct {
	MaxConcurrent int
	Timeout       time.Duration
	Logger        logging.Logger
}

type queueItem struct {
	Item
	cancel context.CancelFunc
}

// Queue runs uploads with bounded concurrency. Each instance is independent;
// callers that want a shared queue pass the same instance around.
type Queue struct {
	upload        UploadFunc
	maxConcurrent int
	timeout       time.Duration
	log           logging.Logger
	newID         func() string

	mu             sync.Mutex
	items          []*queueItem
	active         int
	progressSubs   map[int]func([]Item)
	completionSubs map[int]func(ownerID string, urls []string)
	nextSubID      int
}

// NewQueue returns a queue that runs uploads through fn.
func NewQueue(fn UploadFunc, opts Options) *Queue {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return &Queue{
		upload:         fn,
		maxConcurrent:  opts.MaxConcurrent,
		timeout:        opts.Timeout,
		log:            opts.Logger,
		newID:          uuid.NewString,
		progressSubs:   map[int]func([]Item){},
		completionSubs: map[int]func(string, []string){},
	}
}

// Enqueue adds one pending item per file for ownerID, preserving the given
// order, and starts as many as free slots allow. It returns the new item
// IDs in the same order.
func (q *Queue) Enqueue(ownerID string, files []File) ([]string, error) {
	if ownerID == "" {
		return nil, errors.New("uploader: owner id is required")
	}
	if len(files) == 0 {
		return nil, errors.New("uploader: at least one file is required")
	}

	q.mu.Lock()
	ids := make([]string, 0, len(files))
	for _, f := range files {
		it := &queueItem{Item: Item{
			ID:      q.newID(),
			OwnerID: ownerID,
			File:    f,
			Status:  StatusPending,
		}}
		q.items = append(q.items, it)
		ids = append(ids, it.ID)
	}
	q.fillLocked()
	snap := q.snapshotLocked()
	subs := q.progressSubsLocked()
	q.mu.Unlock()

	notifyProgress(subs, snap)
	return ids, nil
}

// Snapshot returns a copy of every item in insertion order. Mutating the
// returned slice does not affect the queue.
func (q *Queue) Snapshot() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// SubscribeProgress registers fn to receive a full snapshot after every state
// change. The returned function removes the subscription and is safe to call
// more than once.
func (q *Queue) SubscribeProgress(fn func([]Item)) (unsubscribe func()) {
	q.mu.Lock()
	id := q.nextSubID
	q.nextSubID++
	q.progressSubs[id] = fn
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.progressSubs, id)
			q.mu.Unlock()
		})
	}
}

// SubscribeCompletion registers fn to be called with the owner ID and stored
// URLs each time an item completes.
func (q *Queue) SubscribeCompletion(fn func(ownerID string, urls []string)) (unsubscribe func()) {
	q.mu.Lock()
	id := q.nextSubID
	q.nextSubID++
	q.completionSubs[id] = fn
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.completionSubs, id)
			q.mu.Unlock()
		})
	}
}

// Retry moves a failed item back to pending, clearing its progress and error,
// and starts it if a slot is free. Unknown IDs and items that are not failed
// are ignored without any broadcast.
func (q *Queue) Retry(id string) {
	q.mu.Lock()
	it := q.findLocked(id)
	if it == nil || it.Status != StatusFailed {
		q.mu.Unlock()
		return
	}
	it.Status = StatusPending
	it.Progress = 0
	it.Error = ""
	it.URLs = nil
	q.fillLocked()
	snap := q.snapshotLocked()
	subs := q.progressSubsLocked()
	q.mu.Unlock()

	notifyProgress(subs, snap)
}

// Cancel removes the item from the queue. If its upload is in flight the
// underlying request is aborted through context cancellation. Unknown IDs
// are ignored.
func (q *Queue) Cancel(id string) {
	q.mu.Lock()
	idx := -1
	for i, it := range q.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	it := q.items[idx]
	q.items = append(q.items[:idx], q.items[idx+1:]...)
	cancel := it.cancel
	snap := q.snapshotLocked()
	subs := q.progressSubsLocked()
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	notifyProgress(subs, snap)
}

// fillLocked starts pending items while free slots remain. Callers hold q.mu.
func (q *Queue) fillLocked() {
	for _, it := range q.items {
		if q.active >= q.maxConcurrent {
			return
		}
		if it.Status != StatusPending {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		it.Status = StatusUploading
		it.cancel = cancel
		q.active++
		go q.run(ctx, cancel, it.ID)
	}
}

func (q *Queue) run(ctx context.Context, cancel context.CancelFunc, id string) {
	defer cancel()

	q.mu.Lock()
	it := q.findLocked(id)
	if it == nil {
		// Cancelled between scheduling and start.
		q.active--
		q.fillLocked()
		q.mu.Unlock()
		return
	}
	ownerID := it.OwnerID
	file := it.File
	q.mu.Unlock()

	urls, err := q.upload(ctx, ownerID, []File{file}, func(sent, total int64) {
		q.setProgress(id, percent(sent, total))
	})

	q.mu.Lock()
	q.active--
	it = q.findLocked(id)
	if it == nil {
		// Cancelled while in flight. The slot is free again.
		q.fillLocked()
		q.mu.Unlock()
		return
	}
	it.cancel = nil

	var completed *Item
	switch {
	case err == nil:
		it.Status = StatusCompleted
		it.Progress = 100
		it.URLs = urls
		c := it.Item
		completed = &c
	case errors.Is(err, context.DeadlineExceeded):
		it.Status = StatusFailed
		it.Error = TimeoutMessage
	default:
		it.Status = StatusFailed
		it.Error = failureMessage(err)
	}
	q.fillLocked()
	snap := q.snapshotLocked()
	progressSubs := q.progressSubsLocked()
	var completionSubs []func(string, []string)
	if completed != nil {
		for _, fn := range q.completionSubs {
			completionSubs = append(completionSubs, fn)
		}
	}
	q.mu.Unlock()

	if err != nil {
		q.log.Warn(ctx, "upload failed", "owner", ownerID, "error", err)
	} else {
		q.log.Debug(ctx, "upload finished", "owner", ownerID, "urls", len(urls))
	}

	if completed != nil {
		for _, fn := range completionSubs {
			fn(completed.OwnerID, completed.URLs)
		}
	}
	notifyProgress(progressSubs, snap)
}

// setProgress records a new percentage for an in-flight item. Progress only
// moves forward.
func (q *Queue) setProgress(id string, p int) {
	q.mu.Lock()
	it := q.findLocked(id)
	if it == nil || it.Status != StatusUploading || p <= it.Progress {
		q.mu.Unlock()
		return
	}
	it.Progress = p
	snap := q.snapshotLocked()
	subs := q.progressSubsLocked()
	q.mu.Unlock()

	notifyProgress(subs, snap)
}

func (q *Queue) findLocked(id string) *queueItem {
	for _, it := range q.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (q *Queue) snapshotLocked() []Item {
	snap := make([]Item, len(q.items))
	for i, it := range q.items {
		c := it.Item
		c.URLs = append([]string(nil), it.URLs...)
		snap[i] = c
	}
	return snap
}

func (q *Queue) progressSubsLocked() []func([]Item) {
	subs := make([]func([]Item), 0, len(q.progressSubs))
	for _, fn := range q.progressSubs {
		subs = append(subs, fn)
	}
	return subs
}

func notifyProgress(subs []func([]Item), snap []Item) {
	for _, fn := range subs {
		fn(snap)
	}
}

func percent(sent, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(sent * 100 / total)
	if p > 100 {
		p = 100
	}
	return p
}

// failureMessage turns an upload error into the text shown on the item. For
// backend rejections the server message wins when present.
func failureMessage(err error) string {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Upload failed: %d", apiErr.Status)
	}
	return err.Error()
}
