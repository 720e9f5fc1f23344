package batch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	da "github.com/kotarute/kotarute/pkg/datastructure"
	"github.com/kotarute/kotarute/pkg/engine/routing"
)

// Query is one batch request parsed from the line-oriented Key:Value
// format.
type Query struct {
	Mode          string
	Source        int32
	Destination   int32
	AvoidNodes    []int32
	AvoidSegments [][2]int32
	IncludeNode   *int32
	MaxWalkTime   float64
	HasWalkTime   bool
}

const (
	ModeDriving           = "driving"
	ModeRestrictedDriving = "restricted-driving"
	ModeDrivingWalking    = "driving-walking"
)

// ParseQuery reads one query. Recognized keys: Mode, Source, Destination,
// AvoidNodes, AvoidSegments, IncludeNode, MaxWalkTime. Empty values are
// treated as absent.
func ParseQuery(r io.Reader) (*Query, error) {
	q := &Query{Source: -1, Destination: -1}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("malformed batch line %q", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case "Mode":
			q.Mode = value
		case "Source":
			id, err := parseId(value)
			if err != nil {
				return nil, fmt.Errorf("invalid Source %q: %w", value, err)
			}
			q.Source = id
		case "Destination":
			id, err := parseId(value)
			if err != nil {
				return nil, fmt.Errorf("invalid Destination %q: %w", value, err)
			}
			q.Destination = id
		case "AvoidNodes":
			ids, err := parseIdList(value)
			if err != nil {
				return nil, fmt.Errorf("invalid AvoidNodes %q: %w", value, err)
			}
			q.AvoidNodes = ids
		case "AvoidSegments":
			segs, err := parseSegmentList(value)
			if err != nil {
				return nil, fmt.Errorf("invalid AvoidSegments %q: %w", value, err)
			}
			q.AvoidSegments = segs
		case "IncludeNode":
			id, err := parseId(value)
			if err != nil {
				return nil, fmt.Errorf("invalid IncludeNode %q: %w", value, err)
			}
			q.IncludeNode = &id
		case "MaxWalkTime":
			t, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid MaxWalkTime %q: %w", value, err)
			}
			q.MaxWalkTime = t
			q.HasWalkTime = true
		default:
			return nil, fmt.Errorf("unknown batch key %q", key)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if q.Mode == "" {
		return nil, fmt.Errorf("batch query is missing Mode")
	}
	if q.Source < 0 || q.Destination < 0 {
		return nil, fmt.Errorf("batch query is missing Source or Destination")
	}
	return q, nil
}

func parseId(s string) (int32, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func parseIdList(s string) ([]int32, error) {
	parts := strings.Split(s, ",")
	ids := make([]int32, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parseId(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseSegmentList parses "(a,b),(c,d)" pairs.
func parseSegmentList(s string) ([][2]int32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("segment list must be wrapped in parentheses")
	}
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	segs := make([][2]int32, 0)
	for _, pair := range strings.Split(s, "),(") {
		a, b, found := strings.Cut(pair, ",")
		if !found {
			return nil, fmt.Errorf("segment %q is not a pair", pair)
		}
		src, err := parseId(strings.TrimSpace(a))
		if err != nil {
			return nil, err
		}
		dst, err := parseId(strings.TrimSpace(b))
		if err != nil {
			return nil, err
		}
		segs = append(segs, [2]int32{src, dst})
	}
	return segs, nil
}

// Runner executes batch queries against the route planner and renders the
// plain-text report.
type Runner struct {
	planner *routing.RoutePlanner
}

func NewRunner(planner *routing.RoutePlanner) *Runner {
	return &Runner{planner: planner}
}

func (r *Runner) Run(q *Query, w io.Writer) error {
	fmt.Fprintf(w, "Source:%d\n", q.Source)
	fmt.Fprintf(w, "Destination:%d\n", q.Destination)

	switch q.Mode {
	case ModeDriving:
		return r.runDriving(q, w)
	case ModeRestrictedDriving:
		return r.runRestricted(q, w)
	case ModeDrivingWalking:
		return r.runEnvironmental(q, w)
	default:
		return fmt.Errorf("unknown batch mode %q", q.Mode)
	}
}

func (r *Runner) runDriving(q *Query, w io.Writer) error {
	route, err := r.planner.FastestDrivingRoute(q.Source, q.Destination)
	if err != nil {
		return err
	}

	writeLeg(w, "BestDrivingRoute", route.Best)
	writeLeg(w, "AlternativeDrivingRoute", route.Alternative)
	return nil
}

func (r *Runner) runRestricted(q *Query, w io.Writer) error {
	leg, err := r.planner.RestrictedDrivingRoute(q.Source, q.Destination,
		q.AvoidNodes, q.AvoidSegments, q.IncludeNode)
	if err != nil {
		return err
	}

	writeLeg(w, "RestrictedDrivingRoute", leg)
	return nil
}

func (r *Runner) runEnvironmental(q *Query, w io.Writer) error {
	route, err := r.planner.EnvironmentalRoute(q.Source, q.Destination,
		q.MaxWalkTime, q.AvoidNodes, q.AvoidSegments)
	if err != nil {
		return err
	}

	if route.Best != nil {
		writeCandidate(w, "", route.Best)
		return nil
	}

	if len(route.Approximate) == 0 {
		fmt.Fprintf(w, "DrivingRoute:none\n")
		fmt.Fprintf(w, "ParkingNode:none\n")
		fmt.Fprintf(w, "WalkingRoute:none\n")
		fmt.Fprintf(w, "TotalTime:\n")
		fmt.Fprintf(w, "Message:No route found between %d and %d.\n", q.Source, q.Destination)
		return nil
	}

	fmt.Fprintf(w, "Message:No possible route with max. walking time of %s minutes.\n",
		formatTime(q.MaxWalkTime))
	for i, cand := range route.Approximate {
		writeCandidate(w, strconv.Itoa(i+1), cand)
	}
	return nil
}

func writeLeg(w io.Writer, label string, leg *da.RouteLeg) {
	if leg == nil {
		fmt.Fprintf(w, "%s:none\n", label)
		return
	}
	fmt.Fprintf(w, "%s:%s(%s)\n", label, joinVertexIds(leg.GetVertexIDs()), formatTime(leg.GetTime()))
}

func writeCandidate(w io.Writer, ordinal string, cand *da.ParkAndWalkCandidate) {
	fmt.Fprintf(w, "DrivingRoute%s:%s(%s)\n", ordinal,
		joinVertexIds(cand.Drive.GetVertexIDs()), formatTime(cand.Drive.GetTime()))
	fmt.Fprintf(w, "ParkingNode%s:%d\n", ordinal, cand.ParkingNode)
	fmt.Fprintf(w, "WalkingRoute%s:%s(%s)\n", ordinal,
		joinVertexIds(cand.Walk.GetVertexIDs()), formatTime(cand.Walk.GetTime()))
	fmt.Fprintf(w, "TotalTime%s:%s\n", ordinal, formatTime(cand.TotalTime()))
}

func joinVertexIds(ids []int32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return strings.Join(parts, ",")
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
