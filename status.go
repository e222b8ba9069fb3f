package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"towerwitch/geo"
	"towerwitch/motion"
)

const (
	statusInterval  = 30 * time.Second
	statusLogPrefix = "Status: "
)

type statusSnapshot struct {
	HasFix            bool
	Fix               geo.Position
	FixAt             time.Time
	Regime            motion.Regime
	CacheStatus       string
	APIOnline         bool
	BroadcastDisabled bool
}

// startStatusMonitor periodically writes a one-line health summary to the
// log file only, so the dashboard and console stay quiet.
func startStatusMonitor(ctx context.Context, fanout *logFanout, snapshot func() statusSnapshot) {
	ticker := time.NewTicker(statusInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now().UTC()
				fanout.WriteFileOnlyLine(statusLogPrefix+formatStatusLine(snapshot(), now), now)
			}
		}
	}()
}

func formatStatusLine(s statusSnapshot, now time.Time) string {
	fix := "no fix"
	if s.HasFix {
		age := "just now"
		if !s.FixAt.IsZero() {
			age = humanize.RelTime(s.FixAt, now, "ago", "from now")
		}
		fix = fmt.Sprintf("%.4f,%.4f (%s, %s)", s.Fix.Lat, s.Fix.Lon, s.Regime, age)
	}
	api := "offline"
	if s.APIOnline {
		api = "online"
	}
	bcast := "ok"
	if s.BroadcastDisabled {
		bcast = "disabled"
	}
	return fmt.Sprintf("fix=%s api=%s broadcast=%s cache=[%s]", fix, api, bcast, s.CacheStatus)
}
