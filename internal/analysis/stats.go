package analysis

import "math"

// Summary holds basic statistics of a series.
type Summary struct {
	Samples int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
	// Final minus first sample.
	Change float64
}

func Summarize(series []float64) Summary {
	s := Summary{Samples: len(series)}
	if len(series) == 0 {
		return s
	}

	s.Min, s.Max = series[0], series[0]
	for _, v := range series {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Mean += v
	}
	s.Mean /= float64(len(series))

	for _, v := range series {
		s.StdDev += (v - s.Mean) * (v - s.Mean)
	}
	s.StdDev = math.Sqrt(s.StdDev / float64(len(series)))
	s.Change = series[len(series)-1] - series[0]
	return s
}
