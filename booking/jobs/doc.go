// Package jobs runs periodic maintenance commands on a cron schedule.
//
// The only job so far is the stale pending sweep: Pending reservations whose check-in has passed
// can never be approved anymore and are rejected. The sweep rejects without an owner decision,
// so the server binary only schedules it when SWEEP_SCHEDULE is set.
package jobs
