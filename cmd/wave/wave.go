package main

import (
	"flag"
	"fmt"
	"math"

	nf "github.com/sharnoff/neuroflow"
	"github.com/sharnoff/neuroflow/activators"
	"github.com/sharnoff/neuroflow/initializers"
	"github.com/sharnoff/neuroflow/optimizers"
)

const (
	learningRate  float64 = 0.02
	maxIterations int     = 200
	verbose       int     = 10

	// the sequence samples s in [0, 1) at this interval
	step float64 = 0.1
)

var (
	neurons = flag.Int("neurons", 4, "the size of the recurrent layer")
	seed    = flag.Int64("seed", 1, "seed for the initial weights")
)

// sequence gives cos(10·s) as inputs and sin(10·s) as targets, so that each step can only be
// predicted with the memory of the ones before it.
func sequence() (inputs, targets [][]float64) {
	for i := 0; float64(i)*step < 1; i++ {
		s := float64(i) * step
		inputs = append(inputs, []float64{math.Cos(10 * s)})
		targets = append(targets, []float64{math.Sin(10 * s)})
	}

	return
}

func main() {
	flag.Parse()
	initializers.Seed(*seed)

	fmt.Println("Setting up network...")
	layers := []nf.Layer{
		nf.Input(1),
		nf.Recurrent(*neurons, activators.Tanh()),
		nf.Output(1, activators.Identity()),
	}

	s := nf.DefaultSettings()
	s.LearningRate = learningRate
	s.MaxIterations = maxIterations
	s.Verbose = verbose
	s.Approximation = &nf.Approximation{Delta: nf.DefaultDelta}

	net, err := nf.New(layers, s, optimizers.GradientDescent(), nf.FromInitializer(initializers.Xavier()))
	if err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")

	inputs, targets := sequence()

	fmt.Println("Starting training...")
	state, err := net.Train(inputs, targets)
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("Done training! (%v)\n", state)

	outs, err := net.EvaluateSequence(inputs)
	if err != nil {
		panic(err.Error())
	}

	fmt.Println("input, target, output")
	for i := range outs {
		fmt.Printf("%.3f, %.3f, %.3f\n", inputs[i][0], targets[i][0], outs[i][0])
	}
}
