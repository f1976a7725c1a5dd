// Package neuroflow trains and evaluates layered neural networks, both feed-forward and with
// gated recurrent (LSTM-style) layers, from pairs of numeric vectors.
//
// Creating Networks
//
// A Network is described by a sequence of Layers, starting with exactly one Input and ending
// with exactly one Output:
//
//		net, err := nf.New([]nf.Layer{
//			nf.Input(2),
//			nf.Hidden(3, activators.Logistic()),
//			nf.Output(1, activators.Logistic()),
//		}, nf.DefaultSettings(), optimizers.LineSearch(), nil)
//
// For brevity, neuroflow is abbreviated 'nf'. Activators are in the subpackage "activators",
// Optimizers in "optimizers", and so forth. A nil Optimizer or WeightProvider uses the package
// defaults, which are set by importing "optimizers" and "initializers" respectively.
//
// New checks everything it can before returning: the layers, the Settings against the
// Optimizer (for example, L-BFGS accepts no Regularization, and recurrent networks must set
// Approximation), and the shapes of the initial weights. Any problem is a *ConfigurationError.
//
// Training and Evaluating
//
// Feed-forward networks are trained on a batch of independent samples; recurrent networks on a
// single sequence, with one target per element:
//
//		state, err := net.Train(inputs, targets)
//
// The error minimized is the squared error, halved and summed over the samples, averaged over
// the outputs. Training stops once it reaches Settings.Precision, after Settings.MaxIterations,
// or when an EarlyStopping regularization fires; the returned State says which.
//
// Evaluate and EvaluateSequence give the outputs of the network. The memory of recurrent layers
// is reset at the start of every sequence, so both are deterministic.
//
// Saving and Loading
//
// Save writes the layers (as JSON) and the weights (in gonum's binary format) to a directory;
// Load reads them back exactly:
//
//		func (net *Network) Save(dirPath string, overwrite bool) error
//		func Load(dirPath string, s Settings, opt Optimizer) (*Network, error)
//
// Settings can be read from TOML files with LoadSettings.
package neuroflow
