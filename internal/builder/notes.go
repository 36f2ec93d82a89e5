package builder

import (
	"time"

	"github.com/rezonia/eracun/internal/model"
)

// Prefixes of the regulator-mandated notes. The reverse parser strips
// notes carrying these prefixes from the user notes collection.
const (
	OperatorNotePrefix = "Operater: "
	IssuedAtNotePrefix = "Vrijeme izdavanja: "
	OperatorOIBPrefix  = "OIB operatera: "
	issuedAtTimeLayout = "02. 01. 2006. u 15:04"
)

// OperatorNotes returns the two synthetic notes every generated document
// carries: the operator identity and the localized issue timestamp.
func OperatorNotes(op *model.Operator, issuedAt time.Time) []string {
	name := ""
	if op != nil {
		name = op.Name
	}
	return []string{
		OperatorNotePrefix + name,
		IssuedAtNotePrefix + issuedAt.Format(issuedAtTimeLayout),
	}
}

// SyntheticNote reports whether a note text is one of the generated
// regulatory notes rather than a user note.
func SyntheticNote(note string) bool {
	for _, prefix := range []string{OperatorNotePrefix, IssuedAtNotePrefix, OperatorOIBPrefix} {
		if len(note) >= len(prefix) && note[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
