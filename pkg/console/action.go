package console

import (
	"context"
	"errors"
	"sync"
)

// ActionState is the lifecycle of one status submission.
type ActionState int

const (
	StateIdle ActionState = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s ActionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrInFlight is returned when Submit is called while a previous submission
// has not resolved yet.
var ErrInFlight = errors.New("console: a status submission is already in flight")

// ErrClosed is returned when Submit is called on a closed action.
var ErrClosed = errors.New("console: action is closed")

// statusClient is the slice of Client the action needs.
type statusClient interface {
	UpdateParcelStatus(ctx context.Context, id, status, comment string) (*Parcel, error)
	GetParcelHistory(ctx context.Context, id string) ([]StatusChange, error)
}

// StatusAction drives a single parcel's status submissions for the detail
// view. At most one submission is in flight at a time; the cache is only
// touched with the parcel the server returned, the transition log is
// re-queried after a committed transition, and a response arriving after
// Close is discarded without mutating anything.
type StatusAction struct {
	client statusClient
	store  *Store

	mu      sync.Mutex
	state   ActionState
	lastErr *Error
	closed  bool
}

func NewStatusAction(client statusClient, store *Store) *StatusAction {
	return &StatusAction{client: client, store: store, state: StateIdle}
}

// State returns the current lifecycle state.
func (a *StatusAction) State() ActionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Err returns the classified failure of the last submission, set only in
// StateFailed.
func (a *StatusAction) Err() *Error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Submit performs one status transition. It blocks until the server answers,
// commits the returned parcel to the store on success, re-queries the
// transition log so the detail view shows the new entry, and resolves to
// StateSucceeded or StateFailed. Calling Submit while another submission is
// in flight returns ErrInFlight without touching anything.
func (a *StatusAction) Submit(ctx context.Context, parcelID, status, comment string) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	if a.state == StateSubmitting {
		a.mu.Unlock()
		return ErrInFlight
	}
	a.state = StateSubmitting
	a.lastErr = nil
	a.mu.Unlock()

	parcel, err := a.client.UpdateParcelStatus(ctx, parcelID, status, comment)

	var history []StatusChange
	if err == nil {
		// The transition is committed; a failed log fetch keeps the old
		// entries rather than failing the submission.
		history, _ = a.client.GetParcelHistory(ctx, parcelID)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		// The view is gone; drop the result on the floor.
		return ErrClosed
	}

	if err != nil {
		a.state = StateFailed
		var cerr *Error
		if errors.As(err, &cerr) {
			a.lastErr = cerr
		} else {
			a.lastErr = networkError(err)
		}
		return err
	}

	a.store.Replace(*parcel)
	if history != nil {
		a.store.SetHistory(parcelID, history)
	}
	a.state = StateSucceeded
	return nil
}

// Reset returns a resolved action to StateIdle so the view can submit again.
// A submission in flight is left alone.
func (a *StatusAction) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateSucceeded || a.state == StateFailed {
		a.state = StateIdle
		a.lastErr = nil
	}
}

// Close detaches the action from its view. Any in-flight response is
// discarded when it arrives; further Submit calls fail with ErrClosed.
func (a *StatusAction) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
}
