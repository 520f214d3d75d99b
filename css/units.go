package css

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is a resolved CSS length, time or track value. The set of
// implementations is closed: bare numbers entering the engine are converted
// through Infer before storage, so a stored Unit is always fully resolved.
type Unit interface {
	fmt.Stringer
	cssUnit()
}

// fmtNum renders a float without a trailing decimal point: 10 not 10.0.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Px is an absolute pixel length.
type Px float64

func (Px) cssUnit()         {}
func (v Px) String() string { return fmtNum(float64(v)) + "px" }

// Rem is a root-relative length.
type Rem float64

func (Rem) cssUnit()         {}
func (v Rem) String() string { return fmtNum(float64(v)) + "rem" }

// Percent is a fraction of 1 rendered as a percentage: Percent(0.5) is "50%".
type Percent float64

func (Percent) cssUnit()         {}
func (v Percent) String() string { return fmtNum(float64(v)*100) + "%" }

// Fr is a CSS grid proportional-sizing fraction.
type Fr float64

func (Fr) cssUnit()         {}
func (v Fr) String() string { return fmtNum(float64(v)) + "fr" }

// Scalar is a dimensionless ratio rendered as a bare number (flex factors,
// line heights).
type Scalar float64

func (Scalar) cssUnit()         {}
func (v Scalar) String() string { return fmtNum(float64(v)) }

// Ms is a duration in milliseconds.
type Ms float64

func (Ms) cssUnit()         {}
func (v Ms) String() string { return fmtNum(float64(v)) + "ms" }

// Sec is a duration in seconds.
type Sec float64

func (Sec) cssUnit()         {}
func (v Sec) String() string { return fmtNum(float64(v)) + "s" }

type autoUnit struct{}

func (autoUnit) cssUnit()       {}
func (autoUnit) String() string { return "auto" }

// Auto is the CSS "auto" keyword as a Unit.
var Auto Unit = autoUnit{}

// RepeatTrack is a composite grid track list: repeat(Count, Track).
type RepeatTrack struct {
	Count int
	Track Unit
}

func (RepeatTrack) cssUnit() {}
func (v RepeatTrack) String() string {
	return fmt.Sprintf("repeat(%d, %s)", v.Count, v.Track)
}

// MinmaxTrack is a composite grid track size: minmax(Min, Max).
type MinmaxTrack struct {
	Min Unit
	Max Unit
}

func (MinmaxTrack) cssUnit() {}
func (v MinmaxTrack) String() string {
	return fmt.Sprintf("minmax(%s, %s)", v.Min, v.Max)
}

// Repeat builds a repeat(count, track) grid track list.
func Repeat(count int, track Unit) Unit { return RepeatTrack{Count: count, Track: track} }

// Minmax builds a minmax(lo, hi) grid track size.
func Minmax(lo, hi Unit) Unit { return MinmaxTrack{Min: lo, Max: hi} }

// Unit constructors usable as the onFloat argument of Infer and as the ctor
// argument of Scale.
func ToPx(v float64) Unit      { return Px(v) }
func ToRem(v float64) Unit     { return Rem(v) }
func ToPercent(v float64) Unit { return Percent(v) }
func ToFr(v float64) Unit      { return Fr(v) }
func ToScalar(v float64) Unit  { return Scalar(v) }

// Infer resolves a polymorphic numeric input to a Unit. Integers become
// pixels, floats go through onFloat (Scalar when onFloat is nil) and values
// that are already a Unit pass through unchanged. The float default is
// call-site specific: sizing methods pass ToPercent, margins pass ToScalar,
// grid tracks pass ToFr.
func Infer(v any, onFloat func(float64) Unit) (Unit, error) {
	if onFloat == nil {
		onFloat = ToScalar
	}
	switch t := v.(type) {
	case Unit:
		return t, nil
	case int:
		return Px(t), nil
	case int8:
		return Px(t), nil
	case int16:
		return Px(t), nil
	case int32:
		return Px(t), nil
	case int64:
		return Px(t), nil
	case uint:
		return Px(t), nil
	case uint8:
		return Px(t), nil
	case uint16:
		return Px(t), nil
	case uint32:
		return Px(t), nil
	case uint64:
		return Px(t), nil
	case float32:
		return onFloat(float64(t)), nil
	case float64:
		return onFloat(t), nil
	default:
		return nil, fmt.Errorf("%w: cannot use %T (%v) as a unit", ErrInvalidValue, v, v)
	}
}

// Scale produces steps values linearly interpolated between from and to
// inclusive, each wrapped by ctor. Used to generate typographic and spacing
// scales. At least 2 steps are required.
func Scale(ctor func(float64) Unit, from, to float64, steps int) ([]Unit, error) {
	fs, err := scaleFloats(from, to, steps)
	if err != nil {
		return nil, err
	}
	out := make([]Unit, steps)
	for i, f := range fs {
		out[i] = ctor(f)
	}
	return out, nil
}

// scaleFloats is the numeric core of Scale, shared with color interpolation.
// Endpoints are exact, not accumulated.
func scaleFloats(from, to float64, steps int) ([]float64, error) {
	if steps < 2 {
		return nil, fmt.Errorf("%w: scale requires at least 2 steps, got %d", ErrInvalidValue, steps)
	}
	out := make([]float64, steps)
	span := (to - from) / float64(steps-1)
	for i := range out {
		out[i] = from + span*float64(i)
	}
	out[0] = from
	out[steps-1] = to
	return out, nil
}

// GridTemplate renders a track specification for grid-template-columns/rows.
// Accepts an int (N equal fr columns), a single Unit or a []Unit track list.
func GridTemplate(v any) (string, error) {
	switch t := v.(type) {
	case int:
		return Repeat(t, Fr(1)).String(), nil
	case Unit:
		return t.String(), nil
	case []Unit:
		parts := make([]string, len(t))
		for i, u := range t {
			parts[i] = u.String()
		}
		return strings.Join(parts, " "), nil
	default:
		return "", fmt.Errorf("%w: cannot use %T as a grid template", ErrInvalidValue, v)
	}
}
