package walk

import (
	"tarn/logging"
	"tarn/sem"
)

// logError logs a compile error in the file of the current scope
func (w *Walker) logError(sc *sem.Scope, msg string, kind int, pos *logging.TextPosition) {
	logging.LogCompileError(
		sem.LogContextOf(sc, nil),
		msg,
		kind,
		pos,
	)
}

// logWarning logs a compile warning in the file of the current scope
func (w *Walker) logWarning(sc *sem.Scope, msg string, kind int, pos *logging.TextPosition) {
	logging.LogCompileWarning(
		sem.LogContextOf(sc, nil),
		msg,
		kind,
		pos,
	)
}
