// Package schedule re-runs a Callisto program on a cron schedule.
//
// It backs "callisto schedule", which keeps a program running every few
// minutes until interrupted:
//
//	s, err := schedule.NewScheduler("*/5 * * * *", func(ctx context.Context) error {
//		_, err := r.Run(ctx, path)
//		return err
//	}, logger)
//	if err != nil {
//		return err
//	}
//	return s.Run(ctx, true)
//
// Failed runs are logged and counted; they do not stop the schedule.
package schedule
