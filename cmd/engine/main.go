package main

import (
	"context"
	"flag"

	"github.com/kotarute/kotarute/pkg/engine/routing"
	"github.com/kotarute/kotarute/pkg/http"
	"github.com/kotarute/kotarute/pkg/http/usecases"
	"github.com/kotarute/kotarute/pkg/loader"
	"github.com/kotarute/kotarute/pkg/logger"
	"github.com/kotarute/kotarute/pkg/spatialindex"
	"github.com/kotarute/kotarute/pkg/util"
	"go.uber.org/zap"
)

var (
	locationsFile         = flag.String("locations", "./data/Locations.csv", "intersections csv file (optionally .bz2)")
	distancesFile         = flag.String("distances", "./data/Distances.csv", "street segments csv file (optionally .bz2)")
	useRateLimit          = flag.Bool("rate_limit", false, "enable per-client rate limiting")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	mapLoader := loader.NewLoader(logger)
	if err := mapLoader.LoadLocations(*locationsFile); err != nil {
		panic(err)
	}
	if err := mapLoader.LoadDistances(*distancesFile); err != nil {
		panic(err)
	}
	graph := mapLoader.GetGraph()

	planner := routing.NewRoutePlanner(graph, logger)

	var spatialIndex usecases.SpatialIndex
	if graph.HasCoordinates() {
		rtree := spatialindex.NewRtree()
		rtree.Build(graph, *leafBoundingBoxRadius, logger)
		spatialIndex = rtree
	}

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, planner, spatialIndex)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, routingService)

	signal := http.GracefulShutdown()

	logger.Info("Kotarute Route Planner Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
