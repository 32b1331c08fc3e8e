package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/desk-cli/internal/types"
)

var (
	// Geometry patterns
	sizePattern  = regexp.MustCompile(`^(\d+)\s*[xX×]\s*(\d+)$`)
	pointPattern = regexp.MustCompile(`^\(?\s*(-?\d+)\s*,\s*(-?\d+)\s*\)?$`)
)

// ParseSize parses a size string such as "800x600"
func ParseSize(s string) (types.Size, error) {
	s = strings.TrimSpace(s)

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return types.Size{}, fmt.Errorf("invalid size format: %q (want WIDTHxHEIGHT)", s)
	}

	w, _ := strconv.Atoi(matches[1])
	h, _ := strconv.Atoi(matches[2])
	return types.Size{Width: w, Height: h}, nil
}

// ParsePoint parses a position string such as "100,100" or "(100, 100)"
func ParsePoint(s string) (types.Point, error) {
	s = strings.TrimSpace(s)

	matches := pointPattern.FindStringSubmatch(s)
	if matches == nil {
		return types.Point{}, fmt.Errorf("invalid position format: %q (want X,Y)", s)
	}

	x, _ := strconv.Atoi(matches[1])
	y, _ := strconv.Atoi(matches[2])
	return types.Point{X: x, Y: y}, nil
}
