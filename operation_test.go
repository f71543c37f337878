package glifedit

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/tidwall/gjson"
)

func TestContourJSONWithoutOperation(t *testing.T) {
	c := NewContour(NewPoint(1, 2, TypeMove), NewPoint(3, 4, TypeLine))

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if gjson.GetBytes(data, "operation").Exists() {
		t.Errorf("operation key present for a plain contour: %s", data)
	}

	var back Contour
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Op != nil {
		t.Errorf("round trip produced an operation: %#v", back.Op)
	}
	if !reflect.DeepEqual(back.Points, c.Points) {
		t.Errorf("points changed:\n got %+v\nwant %+v", back.Points, c.Points)
	}
}

func TestContourJSONNullOperation(t *testing.T) {
	raw := `{"points":[{"x":0,"y":0,"a":null,"b":null,"type":"move"}],"operation":null}`

	var c Contour
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Op != nil {
		t.Errorf("null operation decoded to %#v, want nil", c.Op)
	}
}

func TestOperationEnvelopeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		wantKind string
	}{
		{
			"variable width stroke",
			&VariableWidthStroke{
				Handles:        []WidthHandle{{Left: 3, Right: 4, Tangent: 1, Interpolation: InterpolationLinear}},
				StartCap:       CapRound,
				EndCap:         CapSquare,
				Join:           JoinMiter,
				RemoveInternal: true,
			},
			"variable-width-stroke",
		},
		{
			"pattern along path",
			&PatternAlongPath{
				Pattern: []Contour{NewContour(
					NewPoint(0, 0, TypeLine),
					NewPoint(4, 0, TypeLine),
					NewPoint(2, 3, TypeLine),
				)},
				Copies:       CopiesRepeated,
				Spacing:      5,
				ScaleY:       2,
				NormalOffset: 1,
				Center:       true,
			},
			"pattern-along-path",
		},
		{
			"dash along path",
			&DashAlongPath{
				Desc:        []float32{10, 5},
				Phase:       2,
				StrokeWidth: 4,
				Cap:         CapRound,
				Join:        JoinRound,
				CullWidth:   1,
			},
			"dash-along-path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContour(NewPoint(0, 0, TypeMove), NewPoint(10, 0, TypeLine))
			c.Op = tt.op

			data, err := json.Marshal(c)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if got := gjson.GetBytes(data, "operation.type").String(); got != tt.wantKind {
				t.Errorf("envelope type = %q, want %q", got, tt.wantKind)
			}

			var back Contour
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(back.Op, tt.op) {
				t.Errorf("operation changed across the round trip:\n got %#v\nwant %#v", back.Op, tt.op)
			}
		})
	}
}

func TestUnknownOperationSurvivesRoundTrip(t *testing.T) {
	raw := `{
		"points":[{"x":0,"y":0,"a":null,"b":null,"type":"move"}],
		"operation":{"type":"future-warp","data":{"strength":3}}
	}`

	var c Contour
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	u, ok := c.Op.(*UnknownOp)
	if !ok {
		t.Fatalf("got %T, want *UnknownOp", c.Op)
	}
	if u.Tag != "future-warp" {
		t.Errorf("tag = %q, want future-warp", u.Tag)
	}

	if out := u.Build(&c); out == nil || len(out) != 0 {
		t.Errorf("Build = %#v, want the defined empty outline", out)
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got := gjson.GetBytes(data, "operation.type").String(); got != "future-warp" {
		t.Errorf("re-encoded type = %q, want future-warp", got)
	}
	if got := gjson.GetBytes(data, "operation.data.strength").Int(); got != 3 {
		t.Errorf("re-encoded data.strength = %d, want 3 (raw parameters preserved)", got)
	}
}

func TestUnknownOperationClone(t *testing.T) {
	u := &UnknownOp{Tag: "future-warp", Data: json.RawMessage(`{"strength":3}`)}

	clone := u.Clone().(*UnknownOp)
	clone.Data[2] = 'X'

	if u.Data[2] == 'X' {
		t.Error("clone shares the raw parameter buffer")
	}
	if clone.Tag != "future-warp" {
		t.Errorf("clone tag = %q", clone.Tag)
	}
}

func TestOperationEnvelopeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"envelope is not an object", `{"points":[],"operation":42}`},
		{"parameters do not decode", `{"points":[],"operation":{"type":"dash-along-path","data":{"dash_desc":"nope"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Contour
			if err := json.Unmarshal([]byte(tt.raw), &c); err == nil {
				t.Error("expected a decode error")
			}
		})
	}
}
