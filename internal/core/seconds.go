package core

import "time"

// Seconds is a duration as it appears in asset files.
type Seconds float64

func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}
