package dataset

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

// ErrNotFound is returned by a Repository that holds no canonical dataset yet.
var ErrNotFound = errors.New("canonical dataset not found")

// Dataset is a published canonical record set. It is never modified after publication;
// a re-ingest publishes a new Dataset with a new ID.
type Dataset struct {
	ID       uuid.UUID
	Records  []sales.Record
	Sources  []string // source files that contributed, in concatenation order
	LoadedAt time.Time
}
