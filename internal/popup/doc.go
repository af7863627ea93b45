// Package popup implements the transient top-level surface core of the
// toolkit: dropdowns, context menus and tooltips. A Host owns one platform
// window and arranges a single child; a Positioner turns a PositionRequest
// plus the available screen space into a concrete window rectangle, applying
// anchor/gravity/constraint-adjustment rules.
package popup
