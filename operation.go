package glifedit

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tidwall/sjson"
)

// OpKind identifies a contour operation variant. The kind is the stable
// serialization tag.
type OpKind string

const (
	// OpVariableWidthStroke expands the skeleton with per-point widths.
	OpVariableWidthStroke OpKind = "variable-width-stroke"
	// OpPatternAlongPath stamps a pattern outline along the skeleton.
	OpPatternAlongPath OpKind = "pattern-along-path"
	// OpDashAlongPath cuts the skeleton into dashes.
	OpDashAlongPath OpKind = "dash-along-path"
)

// Operation is a procedural effect attached to a skeleton contour. The
// renderable outline of such a contour is derived by Build and never
// stored back into the skeleton.
//
// Structural edits notify the operation so position-indexed parameters
// stay aligned with the point sequence. Operations without such
// parameters implement the notifications as no-ops.
type Operation interface {
	// Kind returns the stable serialization tag.
	Kind() OpKind

	// Build derives the renderable outline from the skeleton contour.
	Build(c *Contour) []Contour

	// Sub remaps position-indexed parameters after the skeleton was cut
	// to the half-open point range [begin, end).
	Sub(c *Contour, begin, end int)

	// Append merges parameters after another fragment's points were
	// appended to this operation's contour.
	Append(appended *Contour)

	// Insert grows position-indexed parameters for a point inserted at
	// idx, interpolating from its neighbors.
	Insert(c *Contour, idx int)

	// Clone returns an independent deep copy.
	Clone() Operation
}

// opEnvelope is the serialized form of an operation.
type opEnvelope struct {
	Kind OpKind          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// marshalOperation encodes op behind its kind tag. A nil operation
// encodes as null.
func marshalOperation(op Operation) (json.RawMessage, error) {
	if op == nil {
		return nil, nil
	}
	if u, ok := op.(*UnknownOp); ok {
		return marshalUnknown(u)
	}
	data, err := json.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("glifedit: encoding %s operation: %w", op.Kind(), err)
	}
	return json.Marshal(opEnvelope{Kind: op.Kind(), Data: data})
}

// marshalUnknown re-frames a preserved foreign operation, setting the
// tag and the raw parameter bytes straight into the envelope.
func marshalUnknown(u *UnknownOp) (json.RawMessage, error) {
	out, err := sjson.SetBytes([]byte(`{}`), "type", string(u.Tag))
	if err != nil {
		return nil, fmt.Errorf("glifedit: encoding foreign operation: %w", err)
	}
	if len(u.Data) > 0 {
		out, err = sjson.SetRawBytes(out, "data", u.Data)
		if err != nil {
			return nil, fmt.Errorf("glifedit: encoding foreign operation: %w", err)
		}
	}
	return out, nil
}

// unmarshalOperation resolves the kind tag and decodes the parameters.
// An unrecognized kind decodes to an UnknownOp so downstream builds
// degrade to the empty outline instead of failing.
func unmarshalOperation(raw json.RawMessage) (Operation, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var env opEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("glifedit: decoding operation envelope: %w", err)
	}

	var op Operation
	switch env.Kind {
	case OpVariableWidthStroke:
		op = &VariableWidthStroke{}
	case OpPatternAlongPath:
		op = &PatternAlongPath{}
	case OpDashAlongPath:
		op = &DashAlongPath{}
	default:
		Logger().Debug("unknown contour operation kind", slog.String("kind", string(env.Kind)))
		return &UnknownOp{Tag: env.Kind, Data: env.Data}, nil
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, op); err != nil {
			return nil, fmt.Errorf("glifedit: decoding %s operation: %w", env.Kind, err)
		}
	}
	return op, nil
}

// UnknownOp preserves an operation whose kind this version does not
// understand, tag and raw parameters intact, so foreign payloads
// survive a copy/paste round trip. It builds to the empty outline and
// ignores all notifications.
type UnknownOp struct {
	Tag  OpKind          `json:"-"`
	Data json.RawMessage `json:"-"`
}

// Kind returns the preserved tag.
func (u *UnknownOp) Kind() OpKind { return u.Tag }

// Build returns the defined empty outline.
func (u *UnknownOp) Build(c *Contour) []Contour { return []Contour{} }

// Sub is a no-op.
func (u *UnknownOp) Sub(c *Contour, begin, end int) {}

// Append is a no-op.
func (u *UnknownOp) Append(appended *Contour) {}

// Insert is a no-op.
func (u *UnknownOp) Insert(c *Contour, idx int) {}

// Clone returns a copy preserving the tag and raw parameters.
func (u *UnknownOp) Clone() Operation {
	cp := *u
	cp.Data = append(json.RawMessage(nil), u.Data...)
	return &cp
}
