package popup

import "github.com/kestrelui/overlay/internal/visual"

// FocusHost resolves the surface that should receive focus back when a popup
// closes. The physical window hierarchy is irrelevant here: a popup is
// logically nested inside its logical parent even though it lives in a
// separate top-level window.
//
// Resolution order: the logical parent itself when it is attached to a
// realized visual tree, else the stored parent top-level, else the logical
// parent regardless of attachment. A nil result only occurs when no logical
// parent exists at all.
func FocusHost(logicalParent visual.Control, parentTopLevel visual.Visual) visual.Visual {
	if logicalParent != nil && logicalParent.Attached() {
		return logicalParent
	}
	if parentTopLevel != nil {
		return parentTopLevel
	}
	if logicalParent != nil {
		return logicalParent
	}
	return nil
}

// StyleHost resolves the parent for styling inheritance. Unlike focus
// restoration there is no fallback chain: styling always follows the logical
// tree.
func StyleHost(logicalParent visual.Control) visual.Control {
	return logicalParent
}

// FocusHost resolves the focus-restoration surface for a popup whose logical
// parent is the given control, using this host's owning top-level as the
// fallback.
func (h *Host) FocusHost(logicalParent visual.Control) visual.Visual {
	return FocusHost(logicalParent, h.parent)
}
