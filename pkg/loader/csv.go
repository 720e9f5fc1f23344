package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/kotarute/kotarute/pkg"
	da "github.com/kotarute/kotarute/pkg/datastructure"
	"go.uber.org/zap"
)

// Loader populates a graph from the two map files: Locations.csv
// (Location,Id,Code,Parking with optional Lat,Lon columns) and
// Distances.csv (Location1,Location2,Driving,Walking where "X" means the
// mode cannot traverse the segment). Files ending in .bz2 are decompressed
// transparently.
type Loader struct {
	graph *da.Graph
	log   *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	return &Loader{
		graph: da.NewGraph(),
		log:   log,
	}
}

func (l *Loader) GetGraph() *da.Graph {
	return l.graph
}

type bzip2ReadCloser struct {
	io.Reader
	f  *os.File
	bz *bzip2.Reader
}

func (rc *bzip2ReadCloser) Close() error {
	if err := rc.bz.Close(); err != nil {
		rc.f.Close()
		return err
	}
	return rc.f.Close()
}

func openMapFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		return f, nil
	}

	bz, err := bzip2.NewReader(f, new(bzip2.ReaderConfig))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &bzip2ReadCloser{Reader: bz, f: f, bz: bz}, nil
}

// LoadLocations reads the intersections file. Malformed rows and rows with
// an empty code are skipped with a warning; a duplicate id or code fails
// the load because the graph refuses the insert.
func (l *Loader) LoadLocations(path string) error {
	f, err := openMapFile(path)
	if err != nil {
		return fmt.Errorf("could not open locations file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // 4 or 6 columns per row

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("could not parse locations file %s: %w", path, err)
	}

	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		line := i + 1

		if len(rec) != 4 && len(rec) != 6 {
			l.log.Warn("skipping malformed locations line", zap.Int("line", line))
			continue
		}

		code := strings.TrimSpace(rec[2])
		if code == "" {
			l.log.Warn("skipping locations line with empty code", zap.Int("line", line))
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 32)
		if err != nil {
			l.log.Warn("skipping locations line with invalid id",
				zap.Int("line", line), zap.String("id", rec[1]))
			continue
		}
		parking := strings.TrimSpace(rec[3]) == "1"

		if !l.graph.AddVertex(int32(id), code, parking) {
			return fmt.Errorf("duplicate vertex id %d or code %q on line %d", id, code, line)
		}

		if len(rec) == 6 {
			lat, latErr := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
			lon, lonErr := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
			if latErr != nil || lonErr != nil {
				l.log.Warn("skipping coordinates on locations line", zap.Int("line", line))
				continue
			}
			vId, _ := l.graph.FindVertex(int32(id))
			l.graph.SetVertexCoordinates(vId, lat, lon)
		}
	}

	l.log.Info("locations loaded", zap.Int("vertices", l.graph.NumberOfVertices()))
	return nil
}

// LoadDistances reads the street segments file. Every row becomes one
// bidirectional street; "X" in a time column becomes the unusable sentinel
// for that mode.
func (l *Loader) LoadDistances(path string) error {
	f, err := openMapFile(path)
	if err != nil {
		return fmt.Errorf("could not open distances file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("could not parse distances file %s: %w", path, err)
	}

	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		line := i + 1

		if len(rec) != 4 {
			l.log.Warn("skipping malformed distances line", zap.Int("line", line))
			continue
		}

		src, srcErr := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 32)
		dst, dstErr := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 32)
		if srcErr != nil || dstErr != nil {
			l.log.Warn("skipping distances line with invalid endpoint ids", zap.Int("line", line))
			continue
		}

		driveTime, err := parseTime(rec[2])
		if err != nil {
			l.log.Warn("skipping distances line with invalid driving time", zap.Int("line", line))
			continue
		}
		walkTime, err := parseTime(rec[3])
		if err != nil {
			l.log.Warn("skipping distances line with invalid walking time", zap.Int("line", line))
			continue
		}

		if !l.graph.AddBidirectionalEdge(int32(src), int32(dst), walkTime, driveTime) {
			return fmt.Errorf("unknown endpoint for street %d<->%d on line %d", src, dst, line)
		}
	}

	l.log.Info("distances loaded", zap.Int("edges", l.graph.NumberOfEdges()))
	return nil
}

func parseTime(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "X" {
		return pkg.INF_WEIGHT, nil
	}
	return strconv.ParseFloat(field, 64)
}
