package cmd

import (
	"flag"

	"github.com/etnz/finmgr/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// filePredictors predicts flag values that are file names.
var filePredictors = map[string]complete.Predictor{
	"i":           predict.Files("*.jsonl"),
	"o":           predict.Files("*.jsonl"),
	"prices-file": predict.Files("*.jsonl"),
	"env-file":    predict.Files("*"),
	"log-level":   predict.Set{"debug", "info", "warn", "error"},
}

// Completion describes the fm command line for shell completion: global
// flags, subcommands with their own flags, and their arguments.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(Commands)),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(f),
			Args:  argsPredictor(c.Name()),
		}
	}
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := filePredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}

func argsPredictor(name string) complete.Predictor {
	switch name {
	case "parse":
		return predict.Files("*")
	case "topic":
		topics, _ := docs.GetAllTopics()
		return predict.Set(append(topics, docs.All))
	}
	return predict.Nothing
}
