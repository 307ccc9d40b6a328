// Copyright 2024, the Reflectra authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package passes

import (
	"fmt"
	"time"

	"github.com/angelinath21/Reflectra/util"
)

// PassSource predicts upcoming passes for a satellite over an observer
type PassSource interface {
	RadioPasses(noradID int, latitude, longitude, altitude float64, days int) ([]RadioPass, error)
}

// TrackerOptions configures a pass tracker
type TrackerOptions struct {
	NoradID       int
	SatelliteName string
	Latitude      float64
	Longitude     float64
	Altitude      float64
	Days          int
	Interval      time.Duration
	AlertLead     time.Duration
}

// Tracker polls a pass source and raises one alert per approach window. The
// alert flag is re-armed only after the window has been left, so a pass never
// produces duplicate notifications across polls.
type Tracker struct {
	Source   PassSource
	Notifier Notifier
	Options  TrackerOptions
	Log      util.LogContext

	// Now is overridable for tests
	Now func() time.Time

	stop    chan struct{}
	alerted bool
}

// NewTracker builds a tracker with the default clock
func NewTracker(source PassSource, notifier Notifier, options TrackerOptions, logContext util.LogContext) *Tracker {
	if options.Interval <= 0 {
		options.Interval = time.Minute
	}
	if options.AlertLead <= 0 {
		options.AlertLead = 10 * time.Minute
	}
	if options.Days <= 0 {
		options.Days = 2
	}
	return &Tracker{
		Source:   source,
		Notifier: notifier,
		Options:  options,
		Log:      logContext,
		Now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Run polls until Stop is called. The first poll happens immediately.
func (t *Tracker) Run() {
	util.LogInfo(t.Log, fmt.Sprintf("Tracking %s (NORAD %d) every %s.",
		t.Options.SatelliteName, t.Options.NoradID, t.Options.Interval))

	ticker := time.NewTicker(t.Options.Interval)
	defer ticker.Stop()

	t.poll()
	for {
		select {
		case <-t.stop:
			util.LogInfo(t.Log, "Pass tracker stopped.")
			return
		case <-ticker.C:
			t.poll()
		}
	}
}

// Stop terminates a running tracker
func (t *Tracker) Stop() {
	close(t.stop)
}

func (t *Tracker) poll() {
	predictions, err := t.Source.RadioPasses(t.Options.NoradID,
		t.Options.Latitude, t.Options.Longitude, t.Options.Altitude, t.Options.Days)
	if err != nil {
		util.LogAlert(t.Log, fmt.Sprintf("Pass prediction failed: %v", err))
		return
	}

	now := t.Now().Unix()
	current, inWindow := approachingPass(predictions, now, int64(t.Options.AlertLead.Seconds()))
	if !inWindow {
		t.alerted = false
		return
	}
	if t.alerted {
		return
	}

	if err = t.Notifier.NotifyPass(t.Options.SatelliteName, current); err != nil {
		util.LogAlert(t.Log, fmt.Sprintf("Pass notification failed: %v", err))
		return
	}
	t.alerted = true
	util.LogInfo(t.Log, fmt.Sprintf("Pass alert sent for %s, start %s.",
		t.Options.SatelliteName, time.Unix(current.StartUTC, 0).UTC().Format(time.RFC3339)))
}

// approachingPass returns the first pass whose approach window contains now.
// The window opens leadSeconds before the pass culminates and closes at the
// culmination itself, so an alert always precedes the peak.
func approachingPass(predictions []RadioPass, now, leadSeconds int64) (RadioPass, bool) {
	for _, pass := range predictions {
		delta := pass.MaxUTC - now
		if delta >= 0 && delta <= leadSeconds {
			return pass, true
		}
	}
	return RadioPass{}, false
}
