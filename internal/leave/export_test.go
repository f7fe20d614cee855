package leave

import "time"

// SetClock pins the clock of a Service built by NewService.
func SetClock(svc Service, now func() time.Time) {
	svc.(*service).now = now
}
