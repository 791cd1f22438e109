package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is the serializable structure of a built program.
type Snapshot struct {
	Width     int         `cbor:"width"`
	Height    int         `cbor:"height"`
	PenX      float64     `cbor:"penX"`
	PenY      float64     `cbor:"penY"`
	Functions []*Function `cbor:"functions"` // entry first
}

// cborEncMode encodes snapshots deterministically
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot captures the program and setup state of the executor
func (e *Executor) Snapshot() *Snapshot {
	return &Snapshot{
		Width:     e.canvas.Width(),
		Height:    e.canvas.Height(),
		PenX:      e.x,
		PenY:      e.y,
		Functions: e.order,
	}
}

// MarshalSnapshot serializes a Snapshot to CBOR bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("vm: unmarshal snapshot: %w", err)
	}
	return &s, nil
}
