// Package job contains scheduled background jobs run by the web server's
// cron scheduler.
package job

import (
	"blogd/logger"
	"blogd/web/service"
)

// ContentStatsJob periodically logs content counts so operators can follow
// growth from the server log.
type ContentStatsJob struct {
	statsService *service.StatsService
}

func NewContentStatsJob() *ContentStatsJob {
	return &ContentStatsJob{statsService: service.NewStatsService()}
}

// Run implements cron.Job.
func (j *ContentStatsJob) Run() {
	stats, err := j.statsService.GetStats()
	if err != nil {
		logger.Warning("content stats job failed:", err)
		return
	}
	logger.Infof("content stats: %d users (%d admins), %d posts, %d comments",
		stats.Users.Total, stats.Users.Admins, stats.Posts, stats.Comments)
}
