// Package recovery maps terminal chat messages to a recovery disposition and
// fires the single action that disposition licenses.
//
// Classify and SurfaceFor are pure. Dispatcher owns no state beyond its
// injected collaborators (Resender, Navigator); the troubleshooting flag it
// raises belongs to the Navigator and is reset by whoever closes the modal.
package recovery
