package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx ends when the daemon shuts down. Defaults to Background.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level context handlers derive from.
// A nil ctx resets it to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives from b and is additionally canceled when a is done.
// Values come from b only.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(b)
	stop := context.AfterFunc(a, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// handlerContext bounds work to the request and to server shutdown,
// whichever ends first. cancel must run when the handler returns.
func handlerContext(r *http.Request) (context.Context, context.CancelFunc) {
	return joinContexts(serverBaseCtx, r.Context())
}

// actionContext is for recovery actions that outlive the request (a resend
// keeps going after the response is written) but not the server.
func actionContext() context.Context { return serverBaseCtx }
