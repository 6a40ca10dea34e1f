package biome

import (
	"time"
)

// Clock is the per-frame time source. Elapsed is sampled as now-Start on
// every frame rather than accumulated from Dt, so animation speed follows
// the wall clock regardless of frame rate.
type Clock struct {
	Start   time.Time
	Now     time.Time
	Elapsed time.Duration
	Dt      time.Duration
	Frame   uint64
}

// Seconds returns Elapsed in seconds, the unit every animator takes.
func (c *Clock) Seconds() float32 {
	return float32(c.Elapsed.Seconds())
}

type ClockModule struct {
	// Now overrides time.Now, mostly for tests.
	Now func() time.Time
}

func (mod ClockModule) Install(app *App, cmd *Commands) {
	now := mod.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	cmd.AddResources(&Clock{Start: start, Now: start}, &clockSource{now: now})
	app.UseSystem(
		System(clockSystem).
			InStage(PreUpdate),
	)
}

type clockSource struct {
	now func() time.Time
}

func clockSystem(clock *Clock, src *clockSource) {
	now := src.now()
	elapsed := now.Sub(clock.Start)
	if elapsed < clock.Elapsed {
		// Never run backwards even if the source does.
		elapsed = clock.Elapsed
		now = clock.Start.Add(elapsed)
	}

	clock.Dt = elapsed - clock.Elapsed
	clock.Elapsed = elapsed
	clock.Now = now
	clock.Frame++
}
