package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedDailyReportTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedBackupTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedDailyReportTask logs a summary of the previous day's sales
func (a *Application) SchedDailyReportTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	day := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	rep, err := a.reportSvc.Daily(context.Background(), day)
	if err != nil {
		zap.S().Errorf("daily report job failed: %v", err)
		return
	}
	zap.L().Info("daily sales summary",
		zap.String("date", rep.Date),
		zap.Int("sales", rep.SalesCount),
		zap.Int("items", rep.TotalItems),
		zap.Float64("revenue", rep.TotalAmount),
	)
}

// SchedBackupTask writes a nightly backup snapshot
func (a *Application) SchedBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if _, err := a.backupSvc.Create(context.Background()); err != nil {
		zap.S().Errorf("backup job failed: %v", err)
	}
}
