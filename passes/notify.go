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
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"

	"github.com/angelinath21/Reflectra/util"
)

// Notifier delivers a pass alert to the observer
type Notifier interface {
	NotifyPass(satelliteName string, pass RadioPass) error
}

// EmailNotifier sends pass alerts over SMTP
type EmailNotifier struct {
	Config    util.SMTPConfig
	Recipient string
}

// NotifyPass emails the observer that the satellite is approaching
func (n *EmailNotifier) NotifyPass(satelliteName string, pass RadioPass) error {
	message := email.NewEmail()
	message.From = n.Config.Sender
	message.To = []string{n.Recipient}
	message.Subject = fmt.Sprintf("%s pass alert", satelliteName)
	message.Text = []byte(passAlertBody(satelliteName, pass))

	address := fmt.Sprintf("%s:%d", n.Config.Host, n.Config.Port)
	auth := smtp.PlainAuth("", n.Config.Username, n.Config.Password, n.Config.Host)
	return message.Send(address, auth)
}

func passAlertBody(satelliteName string, pass RadioPass) string {
	start := time.Unix(pass.StartUTC, 0).UTC().Format(time.RFC1123)
	end := time.Unix(pass.EndUTC, 0).UTC().Format(time.RFC1123)
	return fmt.Sprintf(
		"%s is passing overhead.\n\nStart: %s (azimuth %.1f %s)\nMax elevation: %.1f degrees\nEnd: %s (azimuth %.1f %s)\n",
		satelliteName, start, pass.StartAz, pass.StartAzCompass, pass.MaxEl, end, pass.EndAz, pass.EndAzCompass)
}
