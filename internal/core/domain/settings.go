package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type Quality string

const (
	MinLevel   = 0
	MaxLevel   = 100
	levelUsage = "expected a whole number between 0 and 100"
)

const (
	Quality2x Quality = "2x"
	Quality4x Quality = "4x"
	Quality8K Quality = "8K+"
)

var Qualities = []Quality{Quality2x, Quality4x, Quality8K}

type AspectRatio string

const (
	AspectOriginal AspectRatio = "Original"
	Aspect1x1      AspectRatio = "1:1"
	Aspect4x3      AspectRatio = "4:3"
	Aspect16x9     AspectRatio = "16:9"
)

var AspectRatios = []AspectRatio{AspectOriginal, Aspect1x1, Aspect4x3, Aspect16x9}

type TransformSettings struct {
	Realism     int
	Detail      int
	Quality     Quality
	AspectRatio AspectRatio
}

func DefaultSettings() TransformSettings {
	return TransformSettings{
		Realism:     75,
		Detail:      80,
		Quality:     Quality4x,
		AspectRatio: AspectOriginal,
	}
}

func (s TransformSettings) Validate() error {
	if s.Realism < MinLevel || s.Realism > MaxLevel {
		return fmt.Errorf("realism %d out of range: %s", s.Realism, levelUsage)
	}
	if s.Detail < MinLevel || s.Detail > MaxLevel {
		return fmt.Errorf("detail %d out of range: %s", s.Detail, levelUsage)
	}
	if !slices.Contains(Qualities, s.Quality) {
		return fmt.Errorf("invalid quality %q: expected one of %s", s.Quality, joinOptions(Qualities))
	}
	if !slices.Contains(AspectRatios, s.AspectRatio) {
		return fmt.Errorf("invalid aspect ratio %q: expected one of %s", s.AspectRatio, joinOptions(AspectRatios))
	}

	return nil
}

func (s TransformSettings) String() string {
	return fmt.Sprintf("realism: %d\ndetail: %d\nquality: %s\naspect ratio: %s",
		s.Realism, s.Detail, s.Quality, s.AspectRatio)
}

// ParseLevel parses a realism or detail value.
func ParseLevel(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid level %q: %s", arg, levelUsage)
	}
	if n < MinLevel || n > MaxLevel {
		return 0, fmt.Errorf("level %d out of range: %s", n, levelUsage)
	}

	return n, nil
}

func ParseQuality(arg string) (Quality, error) {
	arg = strings.TrimSpace(arg)
	for _, q := range Qualities {
		if strings.EqualFold(arg, string(q)) {
			return q, nil
		}
	}

	return "", fmt.Errorf("invalid quality %q: expected one of %s", arg, joinOptions(Qualities))
}

func ParseAspectRatio(arg string) (AspectRatio, error) {
	arg = strings.TrimSpace(arg)
	for _, r := range AspectRatios {
		if strings.EqualFold(arg, string(r)) {
			return r, nil
		}
	}

	return "", fmt.Errorf("invalid aspect ratio %q: expected one of %s", arg, joinOptions(AspectRatios))
}

func joinOptions[T ~string](options []T) string {
	s := make([]string, len(options))
	for i, o := range options {
		s[i] = string(o)
	}

	return strings.Join(s, ", ")
}
