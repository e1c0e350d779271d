package marionette

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// EaseFunction names an easing curve that remaps normalized progress.
// Every curve maps 0 to 0 and 1 to 1 exactly; Back and Elastic curves may
// overshoot in between.
type EaseFunction uint8

const (
	EaseLinear EaseFunction = iota
	EaseQuadraticIn
	EaseQuadraticOut
	EaseQuadraticInOut
	EaseCubicIn
	EaseCubicOut
	EaseCubicInOut
	EaseQuarticIn
	EaseQuarticOut
	EaseQuarticInOut
	EaseQuinticIn
	EaseQuinticOut
	EaseQuinticInOut
	EaseSineIn
	EaseSineOut
	EaseSineInOut
	EaseCircularIn
	EaseCircularOut
	EaseCircularInOut
	EaseExponentialIn
	EaseExponentialOut
	EaseExponentialInOut
	EaseElasticIn
	EaseElasticOut
	EaseElasticInOut
	EaseBackIn
	EaseBackOut
	EaseBackInOut
	EaseBounceIn
	EaseBounceOut
	EaseBounceInOut
	easeCount
)

var easeTable = [easeCount]struct {
	name string
	fn   ease.TweenFunc
}{
	EaseLinear:           {"linear", ease.Linear},
	EaseQuadraticIn:      {"quadratic_in", ease.InQuad},
	EaseQuadraticOut:     {"quadratic_out", ease.OutQuad},
	EaseQuadraticInOut:   {"quadratic_in_out", ease.InOutQuad},
	EaseCubicIn:          {"cubic_in", ease.InCubic},
	EaseCubicOut:         {"cubic_out", ease.OutCubic},
	EaseCubicInOut:       {"cubic_in_out", ease.InOutCubic},
	EaseQuarticIn:        {"quartic_in", ease.InQuart},
	EaseQuarticOut:       {"quartic_out", ease.OutQuart},
	EaseQuarticInOut:     {"quartic_in_out", ease.InOutQuart},
	EaseQuinticIn:        {"quintic_in", ease.InQuint},
	EaseQuinticOut:       {"quintic_out", ease.OutQuint},
	EaseQuinticInOut:     {"quintic_in_out", ease.InOutQuint},
	EaseSineIn:           {"sine_in", ease.InSine},
	EaseSineOut:          {"sine_out", ease.OutSine},
	EaseSineInOut:        {"sine_in_out", ease.InOutSine},
	EaseCircularIn:       {"circular_in", ease.InCirc},
	EaseCircularOut:      {"circular_out", ease.OutCirc},
	EaseCircularInOut:    {"circular_in_out", ease.InOutCirc},
	EaseExponentialIn:    {"exponential_in", ease.InExpo},
	EaseExponentialOut:   {"exponential_out", ease.OutExpo},
	EaseExponentialInOut: {"exponential_in_out", ease.InOutExpo},
	EaseElasticIn:        {"elastic_in", ease.InElastic},
	EaseElasticOut:       {"elastic_out", ease.OutElastic},
	EaseElasticInOut:     {"elastic_in_out", ease.InOutElastic},
	EaseBackIn:           {"back_in", ease.InBack},
	EaseBackOut:          {"back_out", ease.OutBack},
	EaseBackInOut:        {"back_in_out", ease.InOutBack},
	EaseBounceIn:         {"bounce_in", ease.InBounce},
	EaseBounceOut:        {"bounce_out", ease.OutBounce},
	EaseBounceInOut:      {"bounce_in_out", ease.InOutBounce},
}

// At evaluates the curve at progress p. p is clamped to [0, 1] and the end
// points are returned exactly so that finished tweens land on their target.
func (e EaseFunction) At(p float64) float64 {
	if !(p > 0) { // also catches NaN
		return 0
	}
	if p >= 1 {
		return 1
	}
	fn := ease.Linear
	if e < easeCount {
		fn = easeTable[e].fn
	}
	return float64(fn(float32(p), 0, 1, 1))
}

func (e EaseFunction) String() string {
	if e < easeCount {
		return easeTable[e].name
	}
	return fmt.Sprintf("EaseFunction(%d)", uint8(e))
}

// ParseEaseFunction returns the curve registered under name, e.g.
// "bounce_out" or "quadratic_in".
func ParseEaseFunction(name string) (EaseFunction, error) {
	for i := range easeTable {
		if easeTable[i].name == name {
			return EaseFunction(i), nil
		}
	}
	return EaseLinear, fmt.Errorf("marionette: unknown ease function %q", name)
}

// MarshalText implements encoding.TextMarshaler for config files.
func (e EaseFunction) MarshalText() ([]byte, error) {
	if e >= easeCount {
		return nil, fmt.Errorf("marionette: invalid ease function %d", uint8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (e *EaseFunction) UnmarshalText(text []byte) error {
	v, err := ParseEaseFunction(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
