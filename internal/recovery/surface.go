package recovery

import "advisord/pkg/types"

// Surface is what the presentation layer renders for a disposition.
type Surface struct {
	TestID      string
	Title       string
	Body        string
	ActionLabel string
	Action      Action
}

var surfaces = map[Disposition]Surface{
	DispositionInterrupted: {
		Body:        "Oops! The generation was interrupted. Let's give it another go!",
		ActionLabel: "Regenerate",
		Action:      ActionRegenerate,
	},
	DispositionAuthError: {
		TestID:      "invalid-API-key-error",
		Body:        "Invalid API key. Please check your API key from Settings and try again.",
		ActionLabel: "Settings",
		Action:      ActionOpenSettings,
	},
	DispositionGenericError: {
		Title:       "Apologies, something’s amiss!",
		Body:        "Jan’s in beta. Access troubleshooting assistance now.",
		ActionLabel: "troubleshooting assistance",
		Action:      ActionOpenTroubleshooting,
	},
}

// SurfaceFor returns the surface for d. It reports false for DispositionNone.
func SurfaceFor(d Disposition) (Surface, bool) {
	s, ok := surfaces[d]
	return s, ok
}

// Wire converts the surface to its API representation.
func (s Surface) Wire() *types.Surface {
	return &types.Surface{
		TestID:      s.TestID,
		Title:       s.Title,
		Body:        s.Body,
		ActionLabel: s.ActionLabel,
		Action:      string(s.Action),
	}
}
