package testutil

import (
	"os"
	"strconv"
	"time"
)

// Scaled returns d scaled by $ABASIC_TEST_TIME_SCALE, for timeouts that slow
// machines need to stretch. A missing or invalid value means 1.
func Scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * timeScale())
}

func timeScale() float64 {
	env := os.Getenv("ABASIC_TEST_TIME_SCALE")
	if env == "" {
		return 1
	}
	scale, err := strconv.ParseFloat(env, 64)
	if err != nil || scale <= 0 {
		return 1
	}
	return scale
}
