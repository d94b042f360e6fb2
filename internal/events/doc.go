// Package events lets the generation loop report what it is doing without
// knowing who is listening.
//
// The orchestrator emits one Event per model attempt and one when a call
// completes. Handlers (metrics, audit logging) register with an emitter;
// their failures are reported back to the emitter's caller but must never
// change the outcome of a generation call.
//
// The primary components are:
//   - Event: an attempt or completion record keyed by the call it belongs to
//   - EventHandler: interface for components that can handle events
//   - EventEmitter: interface for components that can emit events
package events
