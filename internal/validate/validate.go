// Package validate checks a software composition for structural
// correctness: per-component checks, sender/receiver port matching, and
// cycle detection over the derived component connectivity.
//
// Findings are collected and returned as data, never raised as errors; an
// empty finding list means the composition is valid.
package validate

import (
	"github.com/google/uuid"

	"swcomp/internal/arch"
)

// Composition runs all checks against a composition and returns the
// combined findings in a stable order: per-component structural findings
// in composition order, then connection findings, then topology findings.
// An empty (never nil) slice means the composition is valid.
func Composition(s *arch.Composition) []Finding {
	findings := []Finding{}
	for _, c := range s.Components() {
		findings = append(findings, Structural(c)...)
	}
	findings = append(findings, Connections(s)...)
	findings = append(findings, Topology(s)...)
	return findings
}

// Report is the result of one validation run, as surfaced to callers and
// serialized by the CLI.
type Report struct {
	RunID       string    `json:"run_id"`
	Composition string    `json:"composition"`
	Valid       bool      `json:"valid"`
	Findings    []Finding `json:"findings"`
}

// NewReport validates a composition and wraps the findings with a fresh
// UUIDv7 run identifier.
func NewReport(s *arch.Composition) Report {
	findings := Composition(s)
	return Report{
		RunID:       uuid.Must(uuid.NewV7()).String(),
		Composition: s.Name,
		Valid:       len(findings) == 0,
		Findings:    findings,
	}
}
