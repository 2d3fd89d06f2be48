package convert

import (
	"errors"
	"fmt"

	"locsplit.dev/locsplit/grouping"
)

// Config describes one conversion run.
type Config struct {
	// Input is a local path or s3://bucket/key URI. A .gz suffix means the
	// export is gzip compressed.
	Input string
	// OutputDir is a local directory or s3://bucket/prefix URI.
	OutputDir string
	// GroupBy is "year" or "month".
	GroupBy string
	// AcceptYears limits the output to these years when non-empty.
	AcceptYears []string
	// SampleCap is the number of points kept in the result sample.
	SampleCap int
}

func (c *Config) Validate() error {
	var err error
	if c.Input == "" {
		err = errors.Join(err, errors.New("input path is required"))
	}
	if c.OutputDir == "" {
		err = errors.Join(err, errors.New("output location is required"))
	}
	if _, keyErr := grouping.ParseKeyFunc(c.GroupBy); keyErr != nil {
		err = errors.Join(err, keyErr)
	}
	for _, year := range c.AcceptYears {
		if !isYear(year) {
			err = errors.Join(err, fmt.Errorf("accepted year %q must be 4 digits", year))
		}
	}
	if c.SampleCap < 0 {
		err = errors.Join(err, fmt.Errorf("sample size must not be negative, got %d", c.SampleCap))
	}
	return err
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
