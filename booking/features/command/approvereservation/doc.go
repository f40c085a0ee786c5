// Package approvereservation implements the Approve Reservation use case with its approval cascade.
//
// Approving a Pending reservation invalidates every other Pending request for the same dates,
// so they are rejected in the same commit. Either the approval and all cascaded rejections are stored, or none.
//
// Two approvals racing for overlapping reservations of one resource cannot both succeed:
// the loser's commit fails the version check, is retried on fresh state and then finds its
// reservation Rejected by the winner's cascade.
package approvereservation
