package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches one parameter value: a plain number or a pi
// expression such as "pi", "pi/2", "3*pi/4", "-pi".
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr parses a parameter expression. Accepts plain numbers and
// pi fractions with optional coefficient and sign.
func parseParamExpr(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	matches := piExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, false
	}
	coeff := 1.0
	if matches[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
			return 0, false
		}
	}
	val := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		val /= denom
	}
	if matches[1] == "-" {
		val = -val
	}
	return val, true
}

// piFractions lists the pi multiples formatParam prints symbolically.
var piFractions = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{3 * math.Pi / 2, "3*pi/2"},
	{math.Pi, "pi"},
	{3 * math.Pi / 4, "3*pi/4"},
	{2 * math.Pi / 3, "2*pi/3"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 8, "pi/8"},
}

// formatParam renders a parameter value, preferring pi notation.
func formatParam(val float64) string {
	for _, pf := range piFractions {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return fmt.Sprintf("%g", val)
}

// parseParams splits a comma-separated parameter list. Returns nil when
// any part fails to parse.
func parseParams(input string) []float64 {
	var params []float64
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		val, ok := parseParamExpr(part)
		if !ok {
			return nil
		}
		params = append(params, val)
	}
	return params
}
