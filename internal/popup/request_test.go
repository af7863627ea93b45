package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelui/overlay/internal/geom"
)

func TestNewRequestDefaults(t *testing.T) {
	target := &fakeVisual{attached: true}
	req := NewRequest(target, PlacementBottom)

	assert.Same(t, target, req.Target.(*fakeVisual))
	assert.Equal(t, PlacementBottom, req.Placement)
	assert.Equal(t, geom.Vec(0, 0), req.Offset)
	assert.Equal(t, EdgeNone, req.Anchor)
	assert.Equal(t, EdgeNone, req.Gravity)
	assert.Equal(t, AdjustAll, req.ConstraintAdjustment)
	assert.Nil(t, req.Rect)
	assert.Nil(t, req.Custom)
}

func TestNewRequestOptions(t *testing.T) {
	rect := geom.NewRect(1, 2, 3, 4)
	req := NewRequest(nil, PlacementAnchorAndGravity,
		WithOffset(geom.Vec(5, -5)),
		WithAnchor(EdgeTop|EdgeLeft),
		WithGravity(EdgeBottom|EdgeRight),
		WithConstraintAdjustment(AdjustSlideX|AdjustSlideY),
		WithAnchorRect(rect),
	)

	assert.Equal(t, geom.Vec(5, -5), req.Offset)
	assert.Equal(t, EdgeTop|EdgeLeft, req.Anchor)
	assert.Equal(t, EdgeBottom|EdgeRight, req.Gravity)
	assert.Equal(t, AdjustSlideX|AdjustSlideY, req.ConstraintAdjustment)
	require.NotNil(t, req.Rect)
	assert.Equal(t, rect, *req.Rect)
}

// The derivation table must be total: every placement value has a defined
// anchor/gravity pair.
func TestPlacementTableTotal(t *testing.T) {
	for _, p := range Placements() {
		t.Run(p.String(), func(t *testing.T) {
			_, ok := placementTable[p]
			assert.True(t, ok, "placement %v has no table row", p)

			req := NewRequest(&fakeVisual{attached: true}, p)
			anchor, gravity := req.effectiveAnchorGravity()
			switch p {
			case PlacementCenter, PlacementAnchorAndGravity:
				assert.Equal(t, EdgeNone, anchor)
				assert.Equal(t, EdgeNone, gravity)
			default:
				assert.NotEqual(t, EdgeNone, anchor, "directional placement must derive an anchor")
				assert.NotEqual(t, EdgeNone, gravity, "directional placement must derive a gravity")
			}
		})
	}
}

func TestPlacementStringTotal(t *testing.T) {
	for _, p := range Placements() {
		assert.NotEqual(t, "unknown", p.String())
	}
}

func TestEffectiveAnchorGravityExplicitOverride(t *testing.T) {
	req := NewRequest(nil, PlacementBottom,
		WithAnchor(EdgeTop|EdgeRight),
	)
	anchor, gravity := req.effectiveAnchorGravity()

	assert.Equal(t, EdgeTop|EdgeRight, anchor, "explicit anchor wins")
	assert.Equal(t, EdgeBottom, gravity, "gravity still from the table")
}

func TestEffectiveAnchorGravityPassthrough(t *testing.T) {
	// AnchorAndGravity passes explicit values through even when EdgeNone.
	req := NewRequest(nil, PlacementAnchorAndGravity)
	anchor, gravity := req.effectiveAnchorGravity()
	assert.Equal(t, EdgeNone, anchor)
	assert.Equal(t, EdgeNone, gravity)

	req = NewRequest(nil, PlacementAnchorAndGravity,
		WithAnchor(EdgeLeft), WithGravity(EdgeRight))
	anchor, gravity = req.effectiveAnchorGravity()
	assert.Equal(t, EdgeLeft, anchor)
	assert.Equal(t, EdgeRight, gravity)
}

func TestEdgesMirrorHorizontal(t *testing.T) {
	tests := []struct {
		name string
		in   Edges
		want Edges
	}{
		{"none", EdgeNone, EdgeNone},
		{"left", EdgeLeft, EdgeRight},
		{"right", EdgeRight, EdgeLeft},
		{"top", EdgeTop, EdgeTop},
		{"bottom", EdgeBottom, EdgeBottom},
		{"top-left", EdgeTop | EdgeLeft, EdgeTop | EdgeRight},
		{"bottom-right", EdgeBottom | EdgeRight, EdgeBottom | EdgeLeft},
		{"left-right", EdgeLeft | EdgeRight, EdgeLeft | EdgeRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.MirrorHorizontal())
		})
	}
}

// Mirroring affects exactly the horizontal component for every placement row.
func TestMirrorTouchesOnlyHorizontalFlags(t *testing.T) {
	vertical := EdgeTop | EdgeBottom
	for _, p := range Placements() {
		row := placementTable[p]
		for _, e := range []Edges{row.anchor, row.gravity} {
			m := e.MirrorHorizontal()
			assert.Equal(t, e&vertical, m&vertical, "placement %v vertical flags changed", p)
			assert.Equal(t, e, m.MirrorHorizontal(), "mirroring must be an involution")
		}
	}
}

func TestEdgesString(t *testing.T) {
	assert.Equal(t, "none", EdgeNone.String())
	assert.Equal(t, "top|left", (EdgeTop | EdgeLeft).String())
	assert.Equal(t, "bottom|right", (EdgeBottom | EdgeRight).String())
}
