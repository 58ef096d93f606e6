package chart

import "math"

// Scale maps values onto a vertical or horizontal pixel range. The domain
// always includes zero and is never empty, so mapping never divides by zero.
type Scale struct {
	Min, Max float64
	// From is the pixel position of Min, To the pixel position of Max.
	From, To float64
}

// NewScale builds a scale for [min,max] projected onto [from,to].
func NewScale(min, max, from, to float64) Scale {
	if math.IsNaN(min) || math.IsInf(min, 0) {
		min = 0
	}
	if math.IsNaN(max) || math.IsInf(max, 0) {
		max = 0
	}
	if min > 0 {
		min = 0
	}
	if max < 0 {
		max = 0
	}
	if math.Abs(max-min) < 1e-9 {
		max = min + 1
	}
	return Scale{Min: min, Max: max, From: from, To: to}
}

// NiceScale is NewScale with the bounds rounded outward to a readable step.
func NiceScale(min, max, from, to float64, ticks int) Scale {
	s := NewScale(min, max, from, to)
	step := niceStep((s.Max - s.Min) / float64(max1(ticks)))
	s.Max = math.Ceil(s.Max/step) * step
	s.Min = math.Floor(s.Min/step) * step
	if math.Abs(s.Max-s.Min) < 1e-9 {
		s.Max = s.Min + step
	}
	return s
}

// Map returns the pixel position of v.
func (s Scale) Map(v float64) float64 {
	return s.From + (v-s.Min)/(s.Max-s.Min)*(s.To-s.From)
}

// Zero returns the pixel position of the zero baseline.
func (s Scale) Zero() float64 { return s.Map(0) }

// Ticks returns n+1 evenly spaced values from Min to Max.
func (s Scale) Ticks(n int) []float64 {
	n = max1(n)
	out := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		out[i] = s.Min + (s.Max-s.Min)*float64(i)/float64(n)
	}
	return out
}

func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base
	switch {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 2.5:
		return 2.5 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

func bounds(datasets []Dataset) (float64, float64) {
	minVal, maxVal := 0.0, 0.0
	for _, ds := range datasets {
		for _, v := range ds.Values {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return minVal, maxVal
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
