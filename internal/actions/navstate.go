package actions

import (
	"sync"

	"advisord/pkg/types"
)

// NavState is the navigation collaborator: it remembers which settings screen
// is selected and whether the troubleshooting modal is open, for the
// presentation layer to read back.
type NavState struct {
	mu           sync.Mutex
	screen       string
	modalTrouble bool
	pub          EventPublisher
}

// NewNavState returns an empty state. A nil publisher drops events.
func NewNavState(pub EventPublisher) *NavState {
	if pub == nil {
		pub = noopPublisher{}
	}
	return &NavState{pub: pub}
}

// SetSelectedSettingScreen implements recovery.Navigator.
func (n *NavState) SetSelectedSettingScreen(screen string) {
	n.mu.Lock()
	n.screen = screen
	n.mu.Unlock()
	n.pub.Publish(newEvent("settings_screen_selected", "", map[string]any{"screen": screen}))
}

// SetModalTroubleShooting implements recovery.Navigator.
func (n *NavState) SetModalTroubleShooting(open bool) {
	n.mu.Lock()
	n.modalTrouble = open
	n.mu.Unlock()
	n.pub.Publish(newEvent("troubleshooting_modal", "", map[string]any{"open": open}))
}

// Snapshot returns the current state.
func (n *NavState) Snapshot() types.UIState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return types.UIState{SelectedSettingScreen: n.screen, ModalTroubleShooting: n.modalTrouble}
}
