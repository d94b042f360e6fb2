// Package generation turns a study request ("N items about topic X at
// difficulty D") into a validated batch of quiz items or flashcards.
//
// The Orchestrator searches model candidates in priority order and, for each
// model, every credential in a per-call shuffled order. Each pair is tried
// once through an Executor. Raw model text is repaired, decoded and validated
// before it is accepted; rate limits trigger a capped linear backoff. When
// the search is exhausted the caller receives a *GenerationError whose Kind
// says whether to retry later, rephrase, or treat the service as down.
//
// The package has no knowledge of any particular model provider; see
// internal/platform/gemini for the Executor used in production.
package generation
