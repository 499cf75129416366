package resolve

// RunDeferred drains the deferred queues of every module the resolver has seen
// until they are empty or until a round makes no progress.  Declarations still
// waiting after that are resolved once more with deferral disabled: a genuine
// cycle is then reported as a circular reference and anything else left
// unresolved as an unresolved forward reference.
func (r *Resolver) RunDeferred() {
	for {
		pending, progress := false, false

		// modules may be loaded while draining
		for i := 0; i < len(r.modules); i++ {
			for _, d := range r.modules[i].Deferred.Take() {
				pending = true

				if r.Resolve(d, nil).Progress() {
					progress = true
				}
			}
		}

		if !pending {
			return
		}

		if !progress {
			break
		}
	}

	r.forced = true
	defer func() { r.forced = false }()

	for i := 0; i < len(r.modules); i++ {
		for _, d := range r.modules[i].Deferred.Take() {
			r.Resolve(d, nil)
		}
	}
}
