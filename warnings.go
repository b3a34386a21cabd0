package ifclite

import (
	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/bridge"
)

// Warning is a per-entity failure that did not abort a Model's build or
// geometry pass, per spec §7's recoverable-error policy.
type Warning struct {
	ExpressID uint32
	Kind      errors.ErrorKind
	Message   string
}

// Warnings returns every warning accumulated so far for m, across
// DataTables and StreamProcess calls.
func (m *Model) Warnings() ([]Warning, error) {
	ws, ok := bridge.Warnings(m.handle)
	if !ok {
		return nil, errClosed(m.handle)
	}
	out := make([]Warning, len(ws))
	for i, w := range ws {
		out[i] = Warning{ExpressID: w.ExpressID, Kind: w.Kind, Message: w.Message}
	}
	return out, nil
}
