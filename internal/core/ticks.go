package core

import "math"

// TicksFor converts a frame count tuned at ReferenceTickRate into ticks at rate.
// Non-zero inputs never round down to zero.
func TicksFor(frames, rate int) int {
	if frames <= 0 {
		return 0
	}
	if rate <= 0 || rate == ReferenceTickRate {
		return frames
	}
	t := int(math.Round(float64(frames) * float64(rate) / ReferenceTickRate))
	return max(t, 1)
}

// PerTick scales a per-reference-frame quantity (speed, angle step) to rate.
func PerTick(perFrame float64, rate int) float64 {
	if rate <= 0 || rate == ReferenceTickRate {
		return perFrame
	}
	return perFrame * ReferenceTickRate / float64(rate)
}

// MillisToTicks converts a duration in milliseconds to ticks at rate.
func MillisToTicks(ms, rate int) int {
	if ms <= 0 {
		return 0
	}
	if rate <= 0 {
		rate = ReferenceTickRate
	}
	return max(int(math.Round(float64(ms)*float64(rate)/1000)), 1)
}
