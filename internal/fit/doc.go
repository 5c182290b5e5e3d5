// Package fit classifies whether a host can comfortably run a model.
//
//   - tier.go: Tier, Classify/ClassifyStrict, Label.
//   - errors.go: ErrInvalidInput.
//   - advisor.go: Advisor, the owning surface that probes the host with a
//     bounded timeout and caches the last assessment.
//
// Classify is a pure function of requiredRAM/totalRAM. Probing is injected
// through the Prober interface so tests never touch the real host.
package fit
