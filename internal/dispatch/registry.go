package dispatch

import (
	"sync"

	"course-go-avito-dispatch/internal/domain"
)

// offer is the in-memory state of one in-flight dispatch. The candidate list
// is fixed at creation; only cursor, timer and epoch change, and only while
// the registry mutex is held.
type offer struct {
	deliveryID int64
	candidates []domain.Candidate
	cursor     int
	timer      Timer
	// epoch is bumped on every advance/accept/cancel. An async completion
	// (send result, timer fire) carries the epoch it was started under and is
	// discarded when the offer moved on without it.
	epoch uint64
}

// Registry holds every in-flight offer keyed by delivery ID. It is owned by
// the DI root and shared by the sequencer instances of the process.
//
// All state here is best effort: a restart loses pending timers and cursors,
// only the durable phone mappings survive. A dispatch interrupted mid-offer
// is not resumed.
type Registry struct {
	mu     sync.Mutex
	offers map[int64]*offer
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{offers: make(map[int64]*offer)}
}

// Len returns the number of in-flight offers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.offers)
}

// Active reports whether a delivery has an in-flight offer.
func (r *Registry) Active(deliveryID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.offers[deliveryID]
	return ok
}

// insert registers a new offer at cursor 0. Reports false if one already
// exists for the delivery: at most one offer per delivery at a time.
func (r *Registry) insert(deliveryID int64, candidates []domain.Candidate) (*offer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[deliveryID]; ok {
		return nil, false
	}
	o := &offer{deliveryID: deliveryID, candidates: candidates}
	r.offers[deliveryID] = o
	return o, true
}

// get returns the live offer for the delivery, if any. Callers must hold the
// registry mutex via withLock.
func (r *Registry) get(deliveryID int64) (*offer, bool) {
	o, ok := r.offers[deliveryID]
	return o, ok
}

// remove drops the offer and stops its timer, if armed.
func (r *Registry) remove(o *offer) {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.epoch++
	delete(r.offers, o.deliveryID)
}

// withLock runs fn while holding the registry mutex. Every offer mutation in
// the sequencer goes through here: no two advance/accept operations for the
// same delivery can interleave.
func (r *Registry) withLock(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}
