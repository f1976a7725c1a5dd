package neuroflow

import (
	"testing"

	"github.com/pkg/errors"
)

func TestShapes(t *testing.T) {
	layers := []Layer{Input(2), Recurrent(3, testTanh{}), Hidden(4, testTanh{}), Recurrent(5, testTanh{}), Output(1, testSigmoid{})}
	want := []Shape{{2, 3}, {3, 4}, {4, 5}, {5, 1}, {3, 9}, {5, 15}}

	got := Shapes(layers)
	if len(got) != len(want) {
		t.Fatalf("Shapes gave %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("shape %d = %v, want %v", i, got[i], want[i])
		}
	}

	rec := recurrentIndexes(layers)
	if rec[1] != 4 || rec[3] != 5 || rec[0] != -1 || rec[2] != -1 || rec[4] != -1 {
		t.Errorf("recurrentIndexes gave %v", rec)
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	for i, layers := range [][]Layer{feedForward(), recurrentLayers()} {
		ws := NewWeights(layers, seeded(int64(i)))

		flat := ws.Flatten()
		if len(flat) != ws.Size() {
			t.Fatalf("Flatten gave %d values, want %d", len(flat), ws.Size())
		}

		back, err := Unflatten(layers, flat)
		if err != nil {
			t.Fatal(err)
		}

		if err = back.Check(layers); err != nil {
			t.Fatal(err)
		}

		for m := range ws {
			r, c := ws[m].Dims()
			for y := 0; y < r; y++ {
				for x := 0; x < c; x++ {
					if ws[m].At(y, x) != back[m].At(y, x) {
						t.Fatalf("matrix %d at (%d, %d): %v != %v", m, y, x, ws[m].At(y, x), back[m].At(y, x))
					}
				}
			}
		}
	}
}

func TestFlattenOrder(t *testing.T) {
	layers := []Layer{Input(2), Hidden(3, testTanh{}), Output(1, testTanh{})}
	ws := NewWeights(layers, nil)

	var order []Entry
	i := 0.0
	ws.Each(func(e Entry) error {
		ws.Set(e, i)
		order = append(order, e)
		i++
		return nil
	})

	for j, v := range ws.Flatten() {
		if v != float64(j) {
			t.Fatalf("Flatten()[%d] = %v, but Each gave entry %v at that position", j, v, order[j])
		}
	}

	if order[3] != (Entry{0, 1, 0}) {
		t.Errorf("fourth entry is %v, want row-major order", order[3])
	}
}

func TestSetFlatSizeMismatch(t *testing.T) {
	ws := NewWeights(feedForward(), nil)
	err := ws.SetFlat(make([]float64, ws.Size()+1))
	if _, ok := err.(SizeMismatchError); !ok {
		t.Errorf("got error %v, want a SizeMismatchError", err)
	}
}

func TestPerturbRestores(t *testing.T) {
	ws := NewWeights(feedForward(), seeded(1))
	e := Entry{1, 2, 1}
	original := ws.At(e)

	var seen float64
	err := ws.perturb(e, 42, func() error {
		seen = ws.At(e)
		return errors.New("failed")
	})

	if err == nil || seen != 42 {
		t.Errorf("perturb gave error %v and value %v inside, want an error and 42", err, seen)
	}

	if ws.At(e) != original {
		t.Errorf("value %v after error, want %v", ws.At(e), original)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic was not propagated")
			}
		}()

		ws.perturb(e, -7, func() error { panic("evaluation failed") })
	}()

	if ws.At(e) != original {
		t.Errorf("value %v after panic, want %v", ws.At(e), original)
	}
}

func TestWeightsProvider(t *testing.T) {
	layers := feedForward()
	ws := NewWeights(layers, seeded(2))

	c, err := ws.Weights(layers)
	if err != nil {
		t.Fatal(err)
	}

	c[0].Set(0, 0, 100)
	if ws[0].At(0, 0) == 100 {
		t.Error("provided weights alias the original")
	}

	if _, err = ws.Weights(recurrentLayers()); err == nil {
		t.Error("weights were provided for layers of a different shape")
	}
}
