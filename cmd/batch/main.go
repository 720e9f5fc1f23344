package main

import (
	"flag"
	"os"

	"github.com/kotarute/kotarute/pkg/batch"
	"github.com/kotarute/kotarute/pkg/engine/routing"
	"github.com/kotarute/kotarute/pkg/loader"
	"github.com/kotarute/kotarute/pkg/logger"
	"go.uber.org/zap"
)

var (
	locationsFile = flag.String("locations", "./data/Locations.csv", "intersections csv file (optionally .bz2)")
	distancesFile = flag.String("distances", "./data/Distances.csv", "street segments csv file (optionally .bz2)")
	inputFile     = flag.String("input", "./data/input.txt", "batch query file")
	outputFile    = flag.String("output", "./data/output.txt", "batch result file")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	mapLoader := loader.NewLoader(logger)
	if err := mapLoader.LoadLocations(*locationsFile); err != nil {
		panic(err)
	}
	if err := mapLoader.LoadDistances(*distancesFile); err != nil {
		panic(err)
	}

	in, err := os.Open(*inputFile)
	if err != nil {
		panic(err)
	}
	defer in.Close()

	query, err := batch.ParseQuery(in)
	if err != nil {
		panic(err)
	}

	out, err := os.Create(*outputFile)
	if err != nil {
		panic(err)
	}
	defer out.Close()

	planner := routing.NewRoutePlanner(mapLoader.GetGraph(), logger)
	runner := batch.NewRunner(planner)
	if err := runner.Run(query, out); err != nil {
		panic(err)
	}

	logger.Info("batch query answered",
		zap.String("input", *inputFile), zap.String("output", *outputFile))
}
