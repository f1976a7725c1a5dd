package neuroflow

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	scaled := testScaled(0.37)
	layers := []Layer{Input(2), Recurrent(3, testTanh{}), Hidden(2, &scaled), Output(1, testSigmoid{})}

	s := DefaultSettings()
	s.Approximation = &Approximation{}
	net, err := New(layers, s, sweepOptimizer{}, FromInitializer(seeded(11)))
	if err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "net")
	if err = net.Save(dir, false); err != nil {
		t.Fatal(err)
	}

	if err = net.Save(dir, false); err == nil {
		t.Error("Save overwrote an existing directory without being asked to")
	} else if err = net.Save(dir, true); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(dir, s, sweepOptimizer{})
	if err != nil {
		t.Fatal(err)
	}

	got := loaded.Layers()
	for i := range layers {
		if got[i].String() != layers[i].String() {
			t.Errorf("layer %d: loaded %v, want %v", i, got[i], layers[i])
		}
	}

	if v := got[2].Activator().Value(1); v != 0.37 {
		t.Errorf("parameter of loaded Activator gives %v, want 0.37", v)
	}

	a, b := net.Weights().Flatten(), loaded.Weights().Flatten()
	if len(a) != len(b) {
		t.Fatalf("loaded %d weights, want %d", len(b), len(a))
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("weight %d: loaded %v, want %v", i, b[i], a[i])
		}
	}

	xs := [][]float64{{0.1, -0.2}, {0.5, 0.3}}
	want, _ := net.EvaluateSequence(xs)
	have, _ := loaded.EvaluateSequence(xs)
	for i := range want {
		if want[i][0] != have[i][0] {
			t.Errorf("element %d: loaded network gave %v, want %v", i, have[i][0], want[i][0])
		}
	}
}

func TestReadWeightsChecksShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWeights(&buf, NewWeights(feedForward(), seeded(1))); err != nil {
		t.Fatal(err)
	}

	other := []Layer{Input(3), Hidden(4, testTanh{}), Hidden(3, testSigmoid{}), Output(2, testSigmoid{})}
	if _, err := ReadWeights(&buf, other); err == nil {
		t.Error("ReadWeights accepted weights of the wrong shape")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing"), DefaultSettings(), sweepOptimizer{}); err == nil {
		t.Error("Load succeeded on a missing directory")
	}
}
