package common

import "time"

// WallClock reads the host wall time in unix seconds.
type WallClock struct{}

func (WallClock) Now() uint64 {
	return uint64(time.Now().Unix())
}
