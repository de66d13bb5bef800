package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"string", String("Al"), `"Al"`},
		{"empty string", String(""), `""`},
		{"string is not escaped", String(`say "hi"`), `"say "hi""`},
		{"integer", Number(30), "30"},
		{"fraction", Number(2.5), "2.5"},
		{"negative", Number(-4), "-4"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"null", Null{}, "null"},
		{"nil", nil, "null"},
		{"array falls back to json", Array{Number(1), String("a")}, `[1,"a"]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(tc.in))
		})
	}
}

func TestFormatNumberMatchesJavaScript(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{30, "30"},
		{-30, "-30"},
		{0.1, "0.1"},
		{1.5e300, "1.5e+300"},
		{123456789012345680000, "123456789012345680000"},
		{1e21, "1e+21"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-2.5e-8, "-2.5e-8"},
		{0.1 + 0.2, "0.30000000000000004"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatNumber(tc.in))
		})
	}
}
