package main

import (
	"math"
	"testing"
)

func TestSequence(t *testing.T) {
	inputs, targets := sequence()
	if len(inputs) != 10 || len(targets) != 10 {
		t.Fatalf("got %d inputs and %d targets, want 10 of each", len(inputs), len(targets))
	}

	for i := range inputs {
		s := float64(i) / 10
		if math.Abs(inputs[i][0]-math.Cos(10*s)) > 1e-12 || math.Abs(targets[i][0]-math.Sin(10*s)) > 1e-12 {
			t.Errorf("element %d: got (%v, %v), want (cos(%v), sin(%v))", i, inputs[i][0], targets[i][0], 10*s, 10*s)
		}
	}
}
