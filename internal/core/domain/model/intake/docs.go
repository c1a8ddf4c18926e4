// Package intake models the custody lifecycle of one customer device
// submission, from pickup request or showroom walk-in through on-site
// verification to a single, final QC decision.
//
// Lifecycle:
//
//	pickup:  pending ──> assigned ──> picked_up ──> qc_review ──┐
//	              (reassign ↺)                                  ├──> service_station | showroom | warehouse | reject
//	walk-in:                                     pending_qc ────┘
//
// Transitions are driven by Events through a single table; terminal states
// accept no events at all, so a second QC decision is always rejected.
package intake
