// Copyright 2024, the Reflectra authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/angelinath21/Reflectra/passes"
	"github.com/angelinath21/Reflectra/util"
)

// NORAD catalog number for Landsat 8
const defaultNoradID = 39084

var trackFlags = []cli.Flag{
	cli.IntFlag{Name: "norad", Value: defaultNoradID, Usage: "NORAD catalog number of the tracked satellite"},
	cli.StringFlag{Name: "sat-name", Value: "LANDSAT 8", Usage: "Display name of the tracked satellite"},
	cli.StringFlag{Name: "address", Usage: "Observer address, geocoded to a position"},
	cli.Float64Flag{Name: "lat", Usage: "Observer latitude, used when no address is given"},
	cli.Float64Flag{Name: "lon", Usage: "Observer longitude, used when no address is given"},
	cli.Float64Flag{Name: "alt", Usage: "Observer altitude in kilometers"},
	cli.IntFlag{Name: "days", Value: 2, Usage: "Prediction window in days"},
	cli.DurationFlag{Name: "interval", Value: 60 * time.Second, Usage: "Poll interval"},
	cli.DurationFlag{Name: "lead", Value: 10 * time.Minute, Usage: "How far ahead of a pass's peak elevation to alert"},
	cli.StringFlag{Name: "recipient", Usage: "Email address that receives pass alerts"},
}

func trackAction(c *cli.Context) {
	logContext := &(util.BasicLogContext{})
	util.LoadDotEnv(logContext)
	if err := util.ApplySecretsFile(logContext); err != nil {
		util.LogAlert(logContext, fmt.Sprintf("Failed to apply secrets file: %v", err))
	}

	latitude, longitude := c.Float64("lat"), c.Float64("lon")
	if address := c.String("address"); address != "" {
		geocoder := &passes.GeocodeContext{BaseAPIURL: util.GetGeocodeAPIURL(), APIKey: util.GetGeocodeAPIKey()}
		var err error
		latitude, longitude, err = geocoder.Geocode(address)
		if err != nil {
			util.LogAlert(logContext, fmt.Sprintf("Failed to geocode %q: %v", address, err))
			return
		}
		util.LogInfo(logContext, fmt.Sprintf("Observer %q resolved to (%f, %f).", address, latitude, longitude))
	}

	recipient := c.String("recipient")
	if recipient == "" {
		util.LogAlert(logContext, "No alert recipient given, pass alerts cannot be delivered.")
		return
	}

	source := &passes.Context{BaseAPIURL: util.GetN2YOAPIURL(), APIKey: util.GetN2YOAPIKey()}
	notifier := &passes.EmailNotifier{Config: util.GetSMTPConfig(), Recipient: recipient}
	tracker := passes.NewTracker(source, notifier, passes.TrackerOptions{
		NoradID:       c.Int("norad"),
		SatelliteName: c.String("sat-name"),
		Latitude:      latitude,
		Longitude:     longitude,
		Altitude:      c.Float64("alt"),
		Days:          c.Int("days"),
		Interval:      c.Duration("interval"),
		AlertLead:     c.Duration("lead"),
	}, logContext)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		tracker.Stop()
	}()
	tracker.Run()
}
