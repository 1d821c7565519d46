package number

import (
	"math"
	"strconv"
)

var epsilon float64 = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < epsilon
}

func ToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(math.Round(num*output)) / output
}

func FloatToStr(num float64, precision int) string {
	return strconv.FormatFloat(num, 'f', precision, 64)
}

func DegreeToRadian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

func RadianToDegree(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

func Clamp(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func Map(value float64, fromlow float64, fromhigh float64, tolow float64, tohigh float64) float64 {
	return (value-fromlow)/(fromhigh-fromlow)*(tohigh-tolow) + tolow
}
