package app

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ayusman/edgerunner/internal/capture"
	"github.com/ayusman/edgerunner/internal/gesture"
)

// runPipeline is the perception loop. It never gives up on the camera:
// a failed open, read or detection waits RetryInterval and tries again.
//
// Per frame:
// 1. Read a frame and mirror it
// 2. Detect face and hand landmarks
// 3. Derive tilt, reboot skill, aim and fire signals
// 4. Publish the record and sleep Interval
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	for {
		wait := a.config.Loop.RetryInterval
		if a.IsEnabled() && a.processFrame() {
			wait = a.config.Loop.Interval
		}

		select {
		case <-stopCh:
			return
		case <-time.After(wait):
		}
	}
}

// processFrame runs one cycle and reports whether a record was published.
func (a *App) processFrame() bool {
	camera := a.Camera()
	if !camera.IsOpen() {
		if err := camera.Open(); err != nil {
			a.logFailure(err, "Cannot open camera.")
			return false
		}
	}

	frame, err := camera.ReadFrame()
	if err != nil {
		a.logFailure(err, "Cannot read frame.")
		return false
	}
	defer frame.Close()

	if a.config.Camera.Mirror {
		capture.Mirror(frame)
	}

	result, err := a.Detector().Detect(frame)
	if err != nil {
		a.logFailure(err, "Cannot detect landmarks.")
		return false
	}

	st := a.engine.Process(gesture.Observation{
		Face:        result.Face,
		Hand:        result.PrimaryHand(),
		FrameHeight: frame.Rows(),
		Time:        a.now(),
	})
	a.store.Publish(st)

	if st.FlushTrigger {
		log.Info("System reboot triggered.")
	}

	return true
}

// logFailure reports transient failures at most once per second.
func (a *App) logFailure(err error, msg string) {
	if a.failLog.Allow() {
		log.WithError(err).Warn(msg)
	}
}
