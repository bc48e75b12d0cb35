package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty")

// Snapshot is a consistent read of one session's cart.
type Snapshot struct {
	SessionID  string          `json:"sessionId"`
	Lines      []Line          `json:"lines"`
	TotalItems int             `json:"totalItems"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// Store keeps one cart per session. Mutations for a session are serialized by
// that session's mutex so the one-line-per-id invariant survives concurrent
// requests; different sessions never contend. A session whose cart ends up
// empty is dropped, so only carts holding items take memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu   sync.Mutex
	cart *Cart
	rec  Recorder
	// gone is set under mu once the session has left the map.
	gone bool
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

// Update runs fn against the session's cart and returns the resulting
// snapshot together with the events fn produced.
func (s *Store) Update(sessionID string, fn func(c *Cart)) (Snapshot, []Event) {
	var evs []Event
	snap := s.UpdateNotify(sessionID, fn, func(e []Event) { evs = e })
	return snap, evs
}

// UpdateNotify is Update with notify run on the events before the session
// lock is released. Notifications of one session therefore leave in the
// order the mutations happened.
func (s *Store) UpdateNotify(sessionID string, fn func(c *Cart), notify func([]Event)) Snapshot {
	sess := s.acquire(sessionID)
	defer sess.mu.Unlock()

	sess.rec.Reset()
	fn(sess.cart)
	snap := snapshot(sessionID, sess.cart)
	if evs := sess.rec.Events(); notify != nil && len(evs) > 0 {
		notify(evs)
	}
	s.dropIfEmpty(sessionID, sess)
	return snap
}

// View reads a session's cart. Unknown sessions read as empty and are not
// created.
func (s *Store) View(sessionID string) Snapshot {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return emptySnapshot(sessionID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.gone {
		return emptySnapshot(sessionID)
	}
	return snapshot(sessionID, sess.cart)
}

// Checkout is what a session's cart looks like at the moment it is submitted.
type Checkout struct {
	Lines      []SummaryLine
	TotalItems int
	TotalValue decimal.Decimal
}

// Checkout hands the session's summary to submit while holding the session
// lock. The cart is cleared only when submit succeeds, and the clear events go
// to notify under the same lock; otherwise the cart is kept untouched and
// submit's error is returned.
func (s *Store) Checkout(sessionID string, submit func(Checkout) error, notify func([]Event)) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return ErrEmptyCart
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.gone || sess.cart.Len() == 0 {
		return ErrEmptyCart
	}

	co := Checkout{
		Lines:      sess.cart.Summary(),
		TotalItems: sess.cart.TotalItemCount(),
		TotalValue: sess.cart.TotalValue(),
	}
	if err := submit(co); err != nil {
		return err
	}

	sess.rec.Reset()
	sess.cart.Clear()
	if notify != nil {
		notify(sess.rec.Events())
	}
	s.dropIfEmpty(sessionID, sess)
	return nil
}

// Sessions counts sessions whose cart holds at least one line.
func (s *Store) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// acquire returns the live session for id, created on demand, with its mutex
// held. A session dropped between lookup and lock is retried.
func (s *Store) acquire(id string) *session {
	for {
		s.mu.Lock()
		sess, ok := s.sessions[id]
		if !ok {
			sess = &session{}
			sess.cart = New(&sess.rec)
			s.sessions[id] = sess
		}
		s.mu.Unlock()

		sess.mu.Lock()
		if !sess.gone {
			return sess
		}
		sess.mu.Unlock()
	}
}

// dropIfEmpty must be called with sess.mu held.
func (s *Store) dropIfEmpty(id string, sess *session) {
	if sess.cart.Len() > 0 {
		return
	}
	sess.gone = true
	s.mu.Lock()
	if s.sessions[id] == sess {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
}

func emptySnapshot(sessionID string) Snapshot {
	return Snapshot{SessionID: sessionID, Lines: []Line{}, TotalValue: decimal.Zero}
}

func snapshot(sessionID string, c *Cart) Snapshot {
	lines := c.Lines()
	if lines == nil {
		lines = []Line{}
	}
	return Snapshot{
		SessionID:  sessionID,
		Lines:      lines,
		TotalItems: c.TotalItemCount(),
		TotalValue: c.TotalValue(),
	}
}
