package clip

// Out-of-range edits clamp to the nearest valid value instead of
// erroring so direct-manipulation editing never blocks on input.

const (
	// FallbackDuration is used when a clip's asset has no known native
	// duration.
	FallbackDuration = 5.0
	// minDuration is the floor a non-positive duration edit clamps to.
	minDuration = 0.1
)

func clampStart(start float64) float64 {
	if start < 0 {
		return 0
	}
	return start
}

func clampDuration(d float64) float64 {
	if d <= 0 {
		return minDuration
	}
	return d
}

func clampVolume(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

func clampTrack(lane Lane, track int) int {
	if track < 0 {
		return 0
	}
	if max := maxTrack(lane); track > max {
		return max
	}
	return track
}
