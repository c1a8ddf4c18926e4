// Package inventory is the custody ledger for physical units that passed QC.
//
// An Item carries a snapshot of where the unit is and what state it is in.
// The snapshot is a projection of the item's movement log: every change goes
// through one internal path that folds a Movement into the snapshot and
// queues the movement for persistence, and Replay folds the persisted log with
// the same function. A snapshot change without a movement cannot be expressed.
package inventory
