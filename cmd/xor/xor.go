package main

import (
	"flag"
	"fmt"

	nf "github.com/sharnoff/neuroflow"
	"github.com/sharnoff/neuroflow/activators"
	"github.com/sharnoff/neuroflow/initializers"
	_ "github.com/sharnoff/neuroflow/optimizers"
)

const (
	// main hyperparameters, used when no settings file is given
	learningRate  float64 = 0.5
	precision     float64 = 0.01
	maxIterations int     = 3000
	verbose       int     = 100

	// where to save/load the network
	path string = "xor save"
)

var (
	settingsPath = flag.String("settings", "", "TOML file to read settings from")
	optimizer    = flag.String("optimizer", "line-search", "the optimizer to train with")
)

var (
	inputs  = [][]float64{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	targets = [][]float64{{0}, {1}, {1}, {0}}
)

func settings() nf.Settings {
	if *settingsPath != "" {
		s, err := nf.LoadSettings(*settingsPath)
		if err != nil {
			panic(err.Error())
		}

		return s
	}

	s := nf.DefaultSettings()
	s.LearningRate = learningRate
	s.Precision = precision
	s.MaxIterations = maxIterations
	s.Verbose = verbose
	return s
}

func opt() nf.Optimizer {
	o, err := nf.OptimizerByName(*optimizer)
	if err != nil {
		panic(err.Error())
	}

	return o
}

func train(net *nf.Network) {
	fmt.Println("Starting training...")
	state, err := net.Train(inputs, targets)
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("Done training! (%v)\n", state)
}

func test(net *nf.Network) {
	fmt.Println("Testing...")
	cost, correct, err := net.Test(inputs, targets, nf.CorrectRound)
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("cost: %v, correct: %v%%\n", cost, 100*correct)

	for _, in := range inputs {
		out, err := net.Evaluate(in)
		if err != nil {
			panic(err.Error())
		}
		fmt.Printf("%v → %v\n", in, out)
	}
}

func save(net *nf.Network) {
	fmt.Println("Saving...")
	if err := net.Save(path, true); err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")
}

func load() *nf.Network {
	fmt.Println("Loading...")
	net, err := nf.Load(path, settings(), opt())
	if err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")

	return net
}

func main() {
	flag.Parse()

	fmt.Println("Setting up network...")
	layers := []nf.Layer{
		nf.Input(2),
		nf.Hidden(3, activators.Tanh()),
		nf.Output(1, activators.Sigmoid()),
	}

	net, err := nf.New(layers, settings(), opt(), nf.FromInitializer(initializers.Xavier()))
	if err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")

	train(net)
	test(net)
	save(net)
	net = load()
	test(net)
}
