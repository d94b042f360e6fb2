// Package gemini provides the generation.Executor backed by Google's Gemini
// API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the generation orchestrator to Google's external Gemini service
// without exposing SDK types to the core.
//
// Key components:
//
// 1. Executor:
//   - Implements generation.Executor with one GenerateContent call per attempt
//   - Builds a short-lived client per credential so attempts share no state
//   - Requests JSON output and applies a per-attempt timeout
//
// 2. Error classification:
//   - Maps SDK and transport failures onto rate limited, not found and
//     transient attempt results
//   - Marks transport failures so callers can tell "unreachable" apart from
//     "misbehaving"
//
// 3. Model discovery:
//   - ListModels reports which models a credential can call generateContent on
package gemini
