package activators

import (
	nf "github.com/sharnoff/neuroflow"
)

func init() {
	list := []func() nf.Activator{
		func() nf.Activator { return Logistic() },
		func() nf.Activator { return Tanh() },
		func() nf.Activator { return Softsign() },
		func() nf.Activator { return Identity() },
		func() nf.Activator { return ReLU() },
		func() nf.Activator { return LeakyReLU(0) }, // 0 is just random. It'll be loaded.
		func() nf.Activator { return ELU(1) },
		func() nf.Activator { return Softplus() },
	}

	for _, f := range list {
		if err := nf.RegisterActivator(f); err != nil {
			panic(err.Error())
		}
	}
}
