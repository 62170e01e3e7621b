package navigation

// Zoom bounds and defaults, in percent.
const (
	MinZoom     = 10
	MaxZoom     = 500
	DefaultZoom = 100
	DefaultStep = 20
)

// ZoomController holds a zoom percentage clamped to [MinZoom, MaxZoom].
// Mutators report whether the value changed so the owner can re-render.
type ZoomController struct {
	value int
	step  int
}

// NewZoomController returns a controller at DefaultZoom. A non-positive step uses DefaultStep.
func NewZoomController(step int) *ZoomController {
	if step <= 0 {
		step = DefaultStep
	}
	return &ZoomController{value: DefaultZoom, step: step}
}

// Value returns the current zoom percent.
func (z *ZoomController) Value() int { return z.value }

// Set clamps and stores v.
func (z *ZoomController) Set(v int) bool {
	v = clampZoom(v)
	if v == z.value {
		return false
	}
	z.value = v
	return true
}

// Step adds or subtracts the step then clamps.
func (z *ZoomController) Step(increase bool) bool {
	if increase {
		return z.Set(z.value + z.step)
	}
	return z.Set(z.value - z.step)
}

// StepSize returns the increment used by Step.
func (z *ZoomController) StepSize() int { return z.step }

// SetStepSize changes the increment; non-positive values are ignored.
func (z *ZoomController) SetStepSize(step int) {
	if step > 0 {
		z.step = step
	}
}

// ResetToFit restores DefaultZoom (image fit to the viewport).
func (z *ZoomController) ResetToFit() bool { return z.Set(DefaultZoom) }

func clampZoom(v int) int {
	if v < MinZoom {
		return MinZoom
	}
	if v > MaxZoom {
		return MaxZoom
	}
	return v
}
