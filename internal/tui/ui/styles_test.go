package ui

import (
	"testing"
)

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	// Rendering must not panic and active tabs must be visually
	// distinct from inactive ones.
	active := styles.TabActive.Render("Day")
	inactive := styles.TabInactive.Render("Day")
	if active == "" || inactive == "" {
		t.Error("tab styles should render content")
	}

	if got := styles.Error.Render("boom"); got == "" {
		t.Error("error style should render content")
	}
	if got := styles.SlotGap.Render("unrecorded"); got == "" {
		t.Error("gap style should render content")
	}
}
