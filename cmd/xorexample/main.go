// Command xorexample trains a small Sequential network on the
// four-point XOR dataset, driving the autograd, layers, losses and
// optimizers packages together end to end.
package main

import (
	"flag"

	"golang.org/x/exp/rand"

	"github.com/wrenford/gnn/pkg/autograd"
	"github.com/wrenford/gnn/pkg/config"
	"github.com/wrenford/gnn/pkg/gnnlog"
	"github.com/wrenford/gnn/pkg/layers"
	"github.com/wrenford/gnn/pkg/losses"
	"github.com/wrenford/gnn/pkg/metrics"
	"github.com/wrenford/gnn/pkg/module"
	"github.com/wrenford/gnn/pkg/optimizers"
	"github.com/wrenford/gnn/pkg/tensor"
)

func xorDataset() ([]autograd.Variable, []autograd.Variable) {
	points := [][2]float64{{0, 0}, {1, 1}, {0, 1}, {1, 0}}
	labels := []float64{0, 0, 1, 1}

	inputs := make([]autograd.Variable, len(points))
	targets := make([]autograd.Variable, len(points))
	for i, p := range points {
		x, _ := tensor.FromData([]float64{p[0], p[1]}, 2, 1)
		y, _ := tensor.FromData([]float64{labels[i]}, 1, 1)
		inputs[i] = autograd.Input(x)
		targets[i] = autograd.NoGrad(y)
	}
	return inputs, targets
}

func buildOptimizer(name string, lr float64) optimizers.Optimizer {
	switch name {
	case "sgd":
		return optimizers.NewSGD(lr)
	case "momentum":
		return optimizers.NewMomentum(lr, 0.9)
	default:
		return optimizers.NewAdam(lr)
	}
}

func buildLoss(name string) losses.Loss {
	switch name {
	case "mae":
		return losses.MeanAbsoluteError{}
	case "bce":
		return losses.BinaryCrossEntropy{}
	default:
		return losses.MeanSquaredError{}
	}
}

func main() {
	configPath := flag.String("config", "", "path to a JSON or YAML training config")
	flag.Parse()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		panic(err)
	}

	log := gnnlog.New(gnnlog.ParseLevel("info"), true)

	src := rand.NewSource(uint64(cfg.Training.Seed))
	hidden := cfg.Model.InputSize
	if len(cfg.Model.HiddenSizes) > 0 {
		hidden = cfg.Model.HiddenSizes[0]
	}

	net := module.NewSequential(
		layers.NewLinear(cfg.Model.InputSize, hidden, cfg.Model.Bias, 0.05, src),
		layers.NewTanh(),
		layers.NewLinear(hidden, cfg.Model.OutputSize, cfg.Model.Bias, 0.05, src),
		layers.NewSigmoid(),
	)
	net.Train()

	opt := buildOptimizer(cfg.Training.Optimizer, cfg.Training.LR)
	loss := buildLoss(cfg.Training.Loss)
	tracker := metrics.NewMAE()

	inputs, targets := xorDataset()

	for epoch := 0; epoch < cfg.Training.Epochs; epoch++ {
		tracker.Reset()
		var epochLoss float64

		for i := range inputs {
			pred := net.Forward(inputs[i])
			l, err := loss.Forward(pred, targets[i])
			if err != nil {
				log.Fatal().Err(err).Msg("loss forward failed")
			}
			epochLoss += l.Data().At64(0)

			autograd.BackwardScalar(l, false)
			opt.Step(net.Parameters())
			opt.ZeroGrad(net.Parameters())

			if err := tracker.Update(pred.Data().Data, targets[i].Data().Data); err != nil {
				log.Fatal().Err(err).Msg("metric update failed")
			}
		}

		if epoch%50 == 0 || epoch == cfg.Training.Epochs-1 {
			log.Info().
				Int("epoch", epoch).
				Float64("loss", epochLoss/float64(len(inputs))).
				Float64("mae", tracker.Value()).
				Msg("epoch complete")
		}
	}

	net.Eval()
	log.Info().Msg("training complete")
	for i := range inputs {
		pred := net.Forward(inputs[i])
		log.Info().
			Floats64("input", inputs[i].Data().Data).
			Float64("predicted", pred.Data().At64(0)).
			Float64("target", targets[i].Data().At64(0)).
			Msg("evaluation sample")
	}
}
