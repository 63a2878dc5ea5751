package validate

import (
	"fmt"

	"swcomp/internal/arch"
)

// Connections checks that every sender port has at least one receiver
// port of the same name somewhere in the composition, and vice versa.
// The match is name only; a sender and receiver on the same component
// still count as matched.
//
// Rather than comparing every port pair, the names present per direction
// are collected once and diffed, which is linear in the total port count.
// Findings still enumerate every offending (component, port) instance,
// since the same port name can recur on multiple components: all
// unmatched senders first, then all unmatched receivers, each in
// composition and port registration order.
func Connections(s *arch.Composition) []Finding {
	senderNames := make(map[string]bool)
	receiverNames := make(map[string]bool)
	for _, c := range s.Components() {
		for _, p := range c.Ports() {
			switch p.Direction {
			case arch.DirectionSender:
				senderNames[p.Name] = true
			case arch.DirectionReceiver:
				receiverNames[p.Name] = true
			}
		}
	}

	var findings []Finding
	for _, c := range s.Components() {
		for _, p := range c.Ports() {
			if p.Direction == arch.DirectionSender && !receiverNames[p.Name] {
				findings = append(findings, Finding{
					Code:      ErrUnmatchedSender,
					Category:  CategoryConnection,
					Component: c.Name,
					Detail:    fmt.Sprintf("sender port %q in component %q has no matching receiver", p.Name, c.Name),
				})
			}
		}
	}
	for _, c := range s.Components() {
		for _, p := range c.Ports() {
			if p.Direction == arch.DirectionReceiver && !senderNames[p.Name] {
				findings = append(findings, Finding{
					Code:      ErrUnmatchedReceiver,
					Category:  CategoryConnection,
					Component: c.Name,
					Detail:    fmt.Sprintf("receiver port %q in component %q has no matching sender", p.Name, c.Name),
				})
			}
		}
	}

	return findings
}
