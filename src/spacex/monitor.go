package spacex

import (
	"context"
	"time"

	"git.handmade.network/hmn/marsport/src/jobs"
	"git.handmade.network/hmn/marsport/src/utils"
	"github.com/jpillora/backoff"
)

type MonitorConfig struct {
	Interval   time.Duration
	MinBackoff time.Duration

	// OnChange, if set, is called whenever the upstream flips between
	// available and unavailable. The first probe always reports.
	OnChange func(available bool, err error)
}

/*
MonitorUpstream periodically fetches the company resource to find out
whether the upstream API is reachable, and logs when that changes.

After a failed probe it waits with exponential backoff, capped at the
regular interval, so an outage is noticed coming back quickly without
hammering the API while it is down.
*/
func MonitorUpstream(api *API, cfg MonitorConfig) *jobs.Job {
	if cfg.Interval <= 0 {
		return jobs.Noop()
	}
	minBackoff := utils.OrDefault(cfg.MinBackoff, time.Second)
	if minBackoff > cfg.Interval {
		minBackoff = cfg.Interval
	}

	return jobs.Go("spacex monitor", func(job *jobs.Job) {
		log := job.Logger
		log.Info().Dur("Interval", cfg.Interval).Msg("Starting spacex API monitor")
		defer log.Info().Msg("Shutting down spacex API monitor")

		boff := backoff.Backoff{
			Min: minBackoff,
			Max: cfg.Interval,
		}

		var known, lastAvailable bool
		for {
			err := probe(job.Ctx, api, cfg.Interval)
			if job.Ctx.Err() != nil {
				return
			}

			available := err == nil
			if !known || available != lastAvailable {
				if available {
					log.Info().Msg("spacex API is available")
				} else {
					log.Warn().Err(err).Msg("spacex API is unavailable")
				}
				if cfg.OnChange != nil {
					cfg.OnChange(available, err)
				}
			}
			known = true
			lastAvailable = available

			wait := cfg.Interval
			if available {
				boff.Reset()
			} else {
				wait = boff.Duration()
			}
			if utils.SleepContext(job.Ctx, wait) != nil {
				return
			}
		}
	})
}

func probe(ctx context.Context, api *API, timeout time.Duration) (err error) {
	defer utils.RecoverPanicAsError(&err)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	_, err = api.GetInfo(ctx)
	return err
}
