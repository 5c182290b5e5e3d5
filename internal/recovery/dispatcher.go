package recovery

import (
	"context"

	"github.com/rs/zerolog"
)

// ScreenProviders is the settings screen opened for an auth error when the
// message does not name its engine.
const ScreenProviders = "Providers"

// Resender re-issues generation for a message.
type Resender interface {
	ResendChatMessage(ctx context.Context, m Message) error
}

// Navigator switches what the presentation layer shows.
type Navigator interface {
	SetSelectedSettingScreen(screen string)
	// SetModalTroubleShooting opens or closes the troubleshooting modal.
	// The Dispatcher only ever opens it.
	SetModalTroubleShooting(open bool)
}

// Dispatcher executes the recovery action for a message.
type Dispatcher struct {
	resender  Resender
	navigator Navigator
	log       zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for action and resend-failure logs.
func WithLogger(l zerolog.Logger) Option { return func(d *Dispatcher) { d.log = l } }

// NewDispatcher wires the collaborators. Both are required.
func NewDispatcher(r Resender, n Navigator, opts ...Option) *Dispatcher {
	d := &Dispatcher{resender: r, navigator: n, log: zerolog.Nop()}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Execute classifies m and fires exactly one collaborator call for its
// disposition. DispositionNone fires nothing. A resend error is logged,
// not returned; retry policy belongs to the Resender.
func (d *Dispatcher) Execute(ctx context.Context, m Message) Disposition {
	disp := Classify(m)
	switch disp {
	case DispositionInterrupted:
		if err := d.resender.ResendChatMessage(ctx, m); err != nil {
			d.log.Error().Err(err).Str("message_id", m.ID).Msg("resend failed")
		}
	case DispositionAuthError:
		d.navigator.SetSelectedSettingScreen(settingsScreen(m))
	case DispositionGenericError:
		d.navigator.SetModalTroubleShooting(true)
	default:
		return DispositionNone
	}
	d.log.Info().Str("message_id", m.ID).Str("disposition", disp.String()).Msg("recovery action")
	return disp
}

func settingsScreen(m Message) string {
	if m.Engine != "" {
		return m.Engine
	}
	return ScreenProviders
}
