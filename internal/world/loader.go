package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chosenoffset.com/portal9/internal/geom"
)

// Structural loading errors. Every one of these aborts Map construction;
// the renderer never sees a partially built map.
var (
	ErrNotEnoughPointCoordinates = errors.New("not enough point coordinates")
	ErrNotEnoughCameraParameters = errors.New("not enough camera parameters")
	ErrNotEnoughSectorVertices   = errors.New("sector needs at least 3 vertices")
	ErrInvalidPointIndex         = errors.New("invalid point index")
	ErrInvalidSectorBounds       = errors.New("sector floor above ceiling")
	ErrNoAdjointSector           = errors.New("no adjoint sector for portal edge")
	ErrUnknownLineType           = errors.New("unknown line type")
)

// pointPair is an unordered pair of point indices, used to match sector
// edges against declared walls and against each other for portal pairing.
type pointPair struct {
	lo, hi uint32
}

func makePointPair(a, b uint32) pointPair {
	if a > b {
		a, b = b, a
	}
	return pointPair{a, b}
}

// sectorData is the raw form of a sector before portal resolution.
type sectorData struct {
	pointIndices []uint32
	floor        float64
	ceiling      float64
	edgePairs    map[pointPair]bool
}

// LoadMapFile reads and parses a .wmt map from disk.
func LoadMapFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", path, err)
	}
	defer f.Close()

	m, err := ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("invalid map file %s: %w", path, err)
	}
	return m, nil
}

// ParseMap parses the .wmt text map format:
//
//	# comment
//	p <x> <y>                point
//	w <i> <j>                wall between points i and j
//	s <floor> <ceil> <i...>  sector as a loop of point indices
//	c <x> <y> <h> <r>        camera spawn location, height and rotation
//
// Sector edges not declared as walls are resolved to portals: each must be
// shared with exactly one other sector, which yields the mutual pairing the
// renderer assumes. Any structural problem aborts parsing with an error
// naming the offending line.
func ParseMap(r io.Reader) (*Map, error) {
	var (
		points  []geom.Vec2
		walls   = make(map[pointPair]bool)
		sectors []sectorData
		m       Map
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "#":
			// Comment.

		case "p", "point":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrNotEnoughPointCoordinates)
			}
			x, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad point coordinate %q: %w", lineNo, fields[1], err)
			}
			y, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad point coordinate %q: %w", lineNo, fields[2], err)
			}
			points = append(points, geom.Vec2{X: x, Y: y})

		case "w", "wall":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrNotEnoughPointCoordinates)
			}
			i, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad wall point index %q: %w", lineNo, fields[1], err)
			}
			j, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad wall point index %q: %w", lineNo, fields[2], err)
			}
			walls[makePointPair(uint32(i), uint32(j))] = true

		case "s", "sector":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrNotEnoughPointCoordinates)
			}
			floor, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad sector floor %q: %w", lineNo, fields[1], err)
			}
			ceiling, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad sector ceiling %q: %w", lineNo, fields[2], err)
			}

			indices := make([]uint32, 0, len(fields)-3)
			for _, fs := range fields[3:] {
				idx, err := strconv.ParseUint(fs, 10, 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad sector point index %q: %w", lineNo, fs, err)
				}
				indices = append(indices, uint32(idx))
			}
			if len(indices) < 3 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrNotEnoughSectorVertices)
			}

			pairs := make(map[pointPair]bool, len(indices))
			for i, first := range indices {
				second := indices[(i+1)%len(indices)]
				pairs[makePointPair(first, second)] = true
			}

			sectors = append(sectors, sectorData{
				pointIndices: indices,
				floor:        floor,
				ceiling:      ceiling,
				edgePairs:    pairs,
			})

		case "c", "camera":
			if len(fields) < 5 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrNotEnoughCameraParameters)
			}
			vals := make([]float64, 4)
			for i, fs := range fields[1:5] {
				v, err := strconv.ParseFloat(fs, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad camera parameter %q: %w", lineNo, fs, err)
				}
				vals[i] = v
			}
			m.SpawnLocation = geom.Vec2{X: vals[0], Y: vals[1]}
			m.SpawnHeight = vals[2]
			m.SpawnRotation = vals[3]

		default:
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownLineType, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}

	// Resolve raw sector data into the final graph: dereference point
	// indices and classify every edge as wall or portal.
	m.sectors = make([]Sector, len(sectors))
	for si, sd := range sectors {
		if sd.floor > sd.ceiling {
			return nil, fmt.Errorf("sector %d: %w: floor %g, ceiling %g", si, ErrInvalidSectorBounds, sd.floor, sd.ceiling)
		}

		sectorPoints := make([]geom.Vec2, len(sd.pointIndices))
		for i, idx := range sd.pointIndices {
			if int(idx) >= len(points) {
				return nil, fmt.Errorf("sector %d: %w: %d", si, ErrInvalidPointIndex, idx)
			}
			sectorPoints[i] = points[idx]
		}

		edges := make([]Edge, len(sd.pointIndices))
		for i, first := range sd.pointIndices {
			second := sd.pointIndices[(i+1)%len(sd.pointIndices)]
			pair := makePointPair(first, second)

			if walls[pair] {
				edges[i].Kind = EdgeWall
				continue
			}

			// Not a declared wall: it must be a portal, so exactly one
			// other sector has to share this edge.
			target := -1
			for oi := range sectors {
				if oi != si && sectors[oi].edgePairs[pair] {
					target = oi
					break
				}
			}
			if target < 0 {
				return nil, fmt.Errorf("sector %d, points %d-%d: %w", si, pair.lo, pair.hi, ErrNoAdjointSector)
			}
			edges[i].Kind = EdgePortal
			edges[i].Target = SectorID(target)
		}

		s := &m.sectors[si]
		s.Points = sectorPoints
		s.Edges = edges
		s.Floor = sd.floor
		s.Ceiling = sd.ceiling
		s.buildEdges()
	}

	return &m, nil
}
