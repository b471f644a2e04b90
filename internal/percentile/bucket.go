// Package percentile ranks a user's score against peers in the same age
// bracket, and falls back to population benchmarks when the peer sample
// is too small to be meaningful.
package percentile

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// Ages 18 through 24 each form their own bracket. Early-career finances
// change fast enough year over year that pooling them would flatter
// 18-year-olds and shortchange 24-year-olds.
const (
	Bucket25to30 = "25-30"
	Bucket31to40 = "31-40"
	Bucket41to50 = "41-50"
	Bucket51Plus = "51+"
)

// AgeBucket maps an age to its peer-comparison bracket. Ages under 18
// are rejected rather than pooled into the youngest bracket.
func AgeBucket(age int) (string, error) {
	switch {
	case age < 18:
		return "", eris.Errorf("percentile: age %d is below the minimum of 18", age)
	case age <= 24:
		return strconv.Itoa(age), nil
	case age <= 30:
		return Bucket25to30, nil
	case age <= 40:
		return Bucket31to40, nil
	case age <= 50:
		return Bucket41to50, nil
	default:
		return Bucket51Plus, nil
	}
}
