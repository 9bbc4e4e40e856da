package main

import "time"

func tickInterval(tps int) time.Duration {
	if tps <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(tps)
}
