package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Importer turns an uploaded file into transactions ready to be created.
type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}

var _ Importer = (*Parser)(nil)
