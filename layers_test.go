package neuroflow

import (
	"testing"
)

func TestCheckLayers(t *testing.T) {
	sig := testSigmoid{}
	cases := []struct {
		name   string
		layers []Layer
		ok     bool
	}{
		{"minimal", []Layer{Input(1), Output(1, sig)}, true},
		{"hidden", []Layer{Input(2), Hidden(3, sig), Output(1, sig)}, true},
		{"recurrent", []Layer{Input(1), Recurrent(2, sig), Hidden(2, sig), Output(1, sig)}, true},
		{"empty", nil, false},
		{"only input", []Layer{Input(1)}, false},
		{"no input", []Layer{Hidden(2, sig), Output(1, sig)}, false},
		{"no output", []Layer{Input(2), Hidden(1, sig)}, false},
		{"input not first", []Layer{Hidden(2, sig), Input(2), Output(1, sig)}, false},
		{"two inputs", []Layer{Input(2), Input(2), Output(1, sig)}, false},
		{"two outputs", []Layer{Input(2), Output(2, sig), Output(1, sig)}, false},
		{"zero neurons", []Layer{Input(2), Hidden(0, sig), Output(1, sig)}, false},
		{"no activator", []Layer{Input(2), Hidden(2, nil), Output(1, sig)}, false},
		{"zero value", []Layer{Input(2), {}, Output(1, sig)}, false},
	}

	for _, c := range cases {
		err := CheckLayers(c.layers)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		} else if !c.ok {
			if _, isConfig := err.(*ConfigurationError); !isConfig {
				t.Errorf("%s: got error %v, want a *ConfigurationError", c.name, err)
			}
		}
	}
}

func TestLayerString(t *testing.T) {
	if s := Input(3).String(); s != "input(3)" {
		t.Errorf("Input(3).String() = %q", s)
	}

	if s := Recurrent(2, testTanh{}).String(); s != "recurrent(2, test-tanh)" {
		t.Errorf("Recurrent(2, tanh).String() = %q", s)
	}
}
