// Package domain contains the study content entities produced by generation:
// quiz items and flashcards, plus the output kind that selects between them.
// The JSON shapes defined here are shared with the progress service that
// persists them, so field names are part of an external contract.
package domain
