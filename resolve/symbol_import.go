package resolve

import (
	"fmt"

	"tarn/sem"
)

// resolveAlias resolves a name bound by a selective import to the symbol it
// imports.  Aliases are resolved lazily the first time they are used.
func (r *Resolver) resolveAlias(ad *sem.AliasDecl, sc *sem.Scope) sem.Outcome {
	switch ad.State {
	case sem.PassDone:
		return sem.OutcomeNoop
	case sem.PassInProgress:
		return r.report(
			ad,
			sc,
			fmt.Sprintf("circular reference to imported symbol `%s`", ad.Name()),
			sem.ErrCircularReference,
			ad.Position(),
		)
	}

	imp := ad.Import
	ad.State = sem.PassInProgress

	switch r.Require(imp) {
	case sem.ErrNone:
	case sem.ErrNotReady:
		return r.deferDecl(ad, sc)
	default:
		// the import already reported why it failed
		ad.Poison(imp.Failure())
		return sem.OutcomeErrored
	}

	d, err := imp.Search(ad.SourceName)
	if err != nil {
		return r.report(
			ad,
			sc,
			fmt.Sprintf("symbol `%s` is not publicly visible in module `%s`", ad.SourceName, imp.Path()),
			sem.ErrUndefined,
			ad.Position(),
		)
	}

	ad.Target = d
	return finish(ad)
}
