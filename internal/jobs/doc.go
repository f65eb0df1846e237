// Package jobs implements background jobs for guildgate.
//
// Jobs run on their own goroutine, independent of HTTP request handling,
// and share one shape: a constructor taking the interval, Start and Stop for
// lifecycle, RunOnce for a manual trigger, and IsRunning.
//
//	job := jobs.NewPoolHealthJob(pool, cfg.Chain.HealthInterval)
//	job.Start()
//	defer job.Stop()
//
// Jobs log failures but never crash the process.
package jobs
