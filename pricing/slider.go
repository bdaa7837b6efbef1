package pricing

// The duration slider on the calculator is non-linear: fine 5-second steps
// for short clips, then 30-second steps up to ten minutes. Compute works on
// raw seconds and never consults this mapping.
const (
	SliderMinSeconds    = 5
	SliderFineStep      = 5
	SliderFineMaxSecs   = 60
	SliderCoarseStep    = 30
	SliderMaxSeconds    = 600
	sliderFinePositions = (SliderFineMaxSecs-SliderMinSeconds)/SliderFineStep + 1
)

// SliderMaxStep is the index of the last slider position.
const SliderMaxStep = sliderFinePositions - 1 + (SliderMaxSeconds-SliderFineMaxSecs)/SliderCoarseStep

// SliderStepToSeconds converts a slider position into a duration. Positions
// outside the slider are clamped.
func SliderStepToSeconds(step int) int {
	if step <= 0 {
		return SliderMinSeconds
	}
	if step > SliderMaxStep {
		step = SliderMaxStep
	}
	if step < sliderFinePositions {
		return SliderMinSeconds + step*SliderFineStep
	}
	return SliderFineMaxSecs + (step-sliderFinePositions+1)*SliderCoarseStep
}

// SecondsToSliderStep returns the first slider position whose duration is at
// least seconds.
func SecondsToSliderStep(seconds int) int {
	if seconds <= SliderMinSeconds {
		return 0
	}
	if seconds >= SliderMaxSeconds {
		return SliderMaxStep
	}
	if seconds <= SliderFineMaxSecs {
		return ceilDiv(seconds-SliderMinSeconds, SliderFineStep)
	}
	return sliderFinePositions - 1 + ceilDiv(seconds-SliderFineMaxSecs, SliderCoarseStep)
}

// SliderStops lists the duration at every slider position.
func SliderStops() []int {
	stops := make([]int, 0, SliderMaxStep+1)
	for i := 0; i <= SliderMaxStep; i++ {
		stops = append(stops, SliderStepToSeconds(i))
	}
	return stops
}
