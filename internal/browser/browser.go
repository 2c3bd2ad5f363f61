// Package browser opens the game page in the user's default browser.
package browser

import (
	"time"

	"github.com/pkg/browser"
	log "github.com/sirupsen/logrus"
)

// Config controls the automatic launch.
type Config struct {
	Open  bool          `yaml:"open"`
	Delay time.Duration `yaml:"delay" validate:"gte=0"`
}

// DefaultConfig opens the page shortly after the listener comes up.
func DefaultConfig() Config {
	return Config{
		Open:  true,
		Delay: 1500 * time.Millisecond,
	}
}

var openURL = browser.OpenURL

// OpenAfter opens url once delay has passed. It returns immediately; the
// returned channel is closed after the attempt. Failures are only logged.
func OpenAfter(url string, delay time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(delay)
		if err := openURL(url); err != nil {
			log.WithError(err).WithField("url", url).Warn("Cannot open browser.")
			return
		}
		log.WithField("url", url).Info("Opened game in browser.")
	}()
	return done
}
