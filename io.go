package neuroflow

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	layersFile  string = "layers.json"
	weightsFile string = "weights.bin"
)

// savedLayer is the JSON form of a Layer.
type savedLayer struct {
	Kind      string
	Neurons   int
	Activator string          `json:",omitempty"`
	Params    json.RawMessage `json:",omitempty"`
}

func parseKind(s string) (Kind, error) {
	for k := InputLayer; k <= OutputLayer; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, errors.Errorf("Unknown layer kind %q", s)
}

// WriteWeights writes the weights to w in gonum's binary matrix format, one matrix after another.
// The values are preserved exactly.
func WriteWeights(w io.Writer, ws Weights) error {
	for i, m := range ws {
		if _, err := m.MarshalBinaryTo(w); err != nil {
			return errors.Wrapf(err, "Failed to write weight matrix %d\n", i)
		}
	}

	return nil
}

// ReadWeights reads weights written by WriteWeights, checking that they fit the layers.
func ReadWeights(r io.Reader, layers []Layer) (Weights, error) {
	shapes := Shapes(layers)
	ws := make(Weights, len(shapes))
	for i := range ws {
		ws[i] = new(mat.Dense)
		if _, err := ws[i].UnmarshalBinaryFrom(r); err != nil {
			return nil, errors.Wrapf(err, "Failed to read weight matrix %d\n", i)
		}
	}

	if err := ws.Check(layers); err != nil {
		return nil, err
	}

	return ws, nil
}

// Save writes the layers and weights of the Network to a new directory at dirPath, with
// permissions 0700. If the directory already exists, Save returns an error unless overwrite is
// true, in which case the directory is first removed.
//
// Settings and the Optimizer are not saved; they are given again to Load.
func (net *Network) Save(dirPath string, overwrite bool) error {
	net.mux.Lock()
	defer net.mux.Unlock()

	if _, err := os.Stat(dirPath); err == nil {
		if !overwrite {
			return errors.Errorf("Can't save network, directory %q already exists and overwrite is not enabled", dirPath)
		}

		if err = os.RemoveAll(dirPath); err != nil {
			return errors.Wrapf(err, "Can't save network, couldn't remove existing directory %q\n", dirPath)
		}
	}

	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Can't save network, couldn't make directory %q\n", dirPath)
	}

	saved := make([]savedLayer, len(net.layers))
	for i, l := range net.layers {
		saved[i] = savedLayer{Kind: l.kind.String(), Neurons: l.neurons}
		if l.act == nil {
			continue
		}

		saved[i].Activator = l.act.TypeString()
		if st, ok := l.act.(Stateful); ok {
			params, err := json.Marshal(st.Get())
			if err != nil {
				return errors.Wrapf(err, "Can't save network, failed to encode parameters of layer %d (%v)\n", i, l)
			}

			saved[i].Params = params
		}
	}

	if err := writeFile(filepath.Join(dirPath, layersFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(saved)
	}); err != nil {
		return errors.Wrapf(err, "Can't save network layers\n")
	}

	if err := writeFile(filepath.Join(dirPath, weightsFile), func(w io.Writer) error {
		return WriteWeights(w, net.ws)
	}); err != nil {
		return errors.Wrapf(err, "Can't save network weights\n")
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q\n", path)
	}

	defer f.Close()

	buf := bufio.NewWriter(f)
	if err = write(buf); err != nil {
		return err
	}

	if err = buf.Flush(); err != nil {
		return errors.Wrapf(err, "Failed to write file %q\n", path)
	}

	return f.Close()
}

// LoadLayers reads the layers saved in the directory at dirPath. Every Activator must have been
// registered by RegisterActivator.
func LoadLayers(dirPath string) ([]Layer, error) {
	f, err := os.Open(filepath.Join(dirPath, layersFile))
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load layers\n")
	}

	defer f.Close()

	var saved []savedLayer
	if err = json.NewDecoder(f).Decode(&saved); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode JSON from file %q in %q\n", layersFile, dirPath)
	}

	layers := make([]Layer, len(saved))
	for i, s := range saved {
		kind, err := parseKind(s.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't load layer %d\n", i)
		}

		layers[i] = Layer{kind: kind, neurons: s.Neurons}
		if s.Activator == "" {
			continue
		}

		act, err := ActivatorByName(s.Activator)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't load Activator %q of layer %d\n", s.Activator, i)
		}

		if st, ok := act.(Stateful); ok && len(s.Params) != 0 {
			if err = json.Unmarshal(s.Params, st.Blank()); err != nil {
				return nil, errors.Wrapf(err, "Can't decode parameters of Activator %q of layer %d\n", s.Activator, i)
			}
		}

		layers[i].act = act
	}

	if err = CheckLayers(layers); err != nil {
		return nil, err
	}

	return layers, nil
}

type savedWeights string

// SavedWeights returns a WeightProvider giving the weights saved in the directory at dirPath.
func SavedWeights(dirPath string) WeightProvider {
	return savedWeights(dirPath)
}

func (p savedWeights) Weights(layers []Layer) (Weights, error) {
	path := filepath.Join(string(p), weightsFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load weights\n")
	}

	defer f.Close()

	ws, err := ReadWeights(bufio.NewReader(f), layers)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load weights from %q\n", path)
	}

	return ws, nil
}

// Load reconstructs a Network previously written by Save, training it with the Settings and
// Optimizer given, as with New.
func Load(dirPath string, s Settings, opt Optimizer) (*Network, error) {
	if _, err := os.Stat(dirPath); err != nil {
		return nil, errors.Wrapf(err, "Can't load network, directory %q does not exist\n", dirPath)
	}

	layers, err := LoadLayers(dirPath)
	if err != nil {
		return nil, err
	}

	return New(layers, s, opt, SavedWeights(dirPath))
}
