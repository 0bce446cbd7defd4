// Package lidar reads the text LiDAR format consumed by geoidx's indexes:
// a small header of '%'-prefixed lines, two of which ("% min x y z ..."
// and "% max x y z ...") carry the dataset bounds, followed by
// whitespace-separated "x y z" rows, one point per line.
//
// This is a collaborator, not part of the index core: geoidx's build
// functions only ever see a bounding box and a slice of records.
package lidar

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/gprender/nearest-neighbour"
)

// Point is one parsed LiDAR return. It satisfies geoidx.Located so it can
// be handed directly to NewQuadtree/NewZGrid/NewRTree via
// geoidx.ProjectLocated.
type Point struct {
	X, Y, Z float64
}

// XY implements geoidx.Located.
func (p Point) XY() (float64, float64) {
	return p.X, p.Y
}

// File is the result of reading a LiDAR text file: the header-declared
// bounds and the parsed points, in file order.
type File struct {
	Bounds geoidx.Rectangle
	// ZMin and ZMax carry the header's z bounds through for callers that
	// want them (e.g. to colour a point cloud by elevation); geoidx's
	// indexes themselves only ever see x and y.
	ZMin, ZMax float64
	Points     []Point
}

// ReadFile parses path in the format described above.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening lidar file").Wrap(err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses the LiDAR text format from r.
func Read(r *os.File) (*File, error) {
	scanner := bufio.NewScanner(r)
	result := &File{}

	haveMin, haveMax := false, false

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] != '%' {
			if err := parseBody(line, scanner, result); err != nil {
				return nil, err
			}
			break
		}

		switch {
		case strings.HasPrefix(line, "% min x y z"):
			x, y, z, err := parseTriple(line, "% min x y z")
			if err != nil {
				return nil, errors.New("parsing min header").Wrap(err)
			}
			result.Bounds.Xmin, result.Bounds.Ymin, result.ZMin = x, y, z
			haveMin = true
		case strings.HasPrefix(line, "% max x y z"):
			x, y, z, err := parseTriple(line, "% max x y z")
			if err != nil {
				return nil, errors.New("parsing max header").Wrap(err)
			}
			result.Bounds.Xmax, result.Bounds.Ymax, result.ZMax = x, y, z
			haveMax = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New("reading lidar file").Wrap(err)
	}
	if !haveMin || !haveMax {
		return nil, errors.New("lidar file missing min/max header")
	}
	return result, nil
}

// parseTriple extracts the "x y z ..." numeric fields following a known
// header prefix; trailing fields beyond the third are ignored.
func parseTriple(line, prefix string) (x, y, z float64, err error) {
	rest := strings.TrimSpace(line[len(prefix):])
	fields := strings.Fields(rest)
	if len(fields) < 3 {
		return 0, 0, 0, errors.New("expected 3 coordinates")
	}
	if x, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return 0, 0, 0, err
	}
	if y, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return 0, 0, 0, err
	}
	if z, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}

// parseBody parses the first non-header line plus every line remaining in
// scanner as "x y z" point rows.
func parseBody(first string, scanner *bufio.Scanner, result *File) error {
	line := first
	for {
		if strings.TrimSpace(line) != "" {
			p, err := parseRow(line)
			if err != nil {
				return errors.New("parsing lidar row").Wrap(err)
			}
			result.Points = append(result.Points, p)
		}
		if !scanner.Scan() {
			break
		}
		line = scanner.Text()
	}
	return nil
}

func parseRow(line string) (Point, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Point{}, errors.New("row has fewer than 2 coordinates")
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, err
	}
	var z float64
	if len(fields) >= 3 {
		z, err = strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Point{}, err
		}
	}
	return Point{X: x, Y: y, Z: z}, nil
}
