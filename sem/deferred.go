package sem

// DeferredQueue is the worklist of declarations whose resolution was postponed
// because a dependency was not ready.  Each module owns one.
type DeferredQueue struct {
	items []Decl
}

// Push enqueues a declaration unless it is already queued
func (q *DeferredQueue) Push(d Decl) {
	db := d.Base()
	if db.queued {
		return
	}

	db.queued = true
	q.items = append(q.items, d)
}

// Take removes and returns every queued declaration in queue order
func (q *DeferredQueue) Take() []Decl {
	items := q.items
	q.items = nil

	for _, d := range items {
		d.Base().queued = false
	}

	return items
}

// Len returns the number of queued declarations
func (q *DeferredQueue) Len() int {
	return len(q.items)
}
