package pkg

// TravelMode selects which of the two independent edge weights a search uses.
type TravelMode uint8

const (
	DRIVING TravelMode = iota
	WALKING
)

func (m TravelMode) String() string {
	switch m {
	case DRIVING:
		return "driving"
	case WALKING:
		return "walking"
	default:
		return "unknown"
	}
}

const (
	// INF_WEIGHT marks a segment as unusable for one travel mode
	// (drive-only or walk-only streets).
	INF_WEIGHT float64 = 1e15

	// ENV_TOTAL_TIME_TOLERANCE: over-budget park-and-walk candidates within
	// this many minutes of the best total are still reported.
	ENV_TOTAL_TIME_TOLERANCE = 2.0
)

const (
	DEBUG = false
)
