package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/siliconia/pkg/math"
)

// ASC format errors.
var (
	ErrIllFormedHeader  = errors.New("ill formed header (no space)")
	ErrUnexpectedKey    = errors.New("unexpected key")
	ErrIncompleteHeader = errors.New("didn't get all expected values")
	ErrOriginOutOfRange = errors.New("origin out of range")
	ErrGridTooLarge     = errors.New("grid too large")
)

// MaxGridSamples bounds nrows*ncols. Larger headers are rejected before any
// sample storage is allocated.
const MaxGridSamples = 1 << 28

// presizeLimit caps the initial sample capacity; append grows past it.
const presizeLimit = 1 << 20

// maxLineSize bounds a single line of the file. Wide tiles put a whole grid
// row on one line.
const maxLineSize = 16 * 1024 * 1024

// ParseError describes why a raster file could not be parsed.
type ParseError struct {
	Path   string
	Line   int   // 1-based
	Kind   error // one of the ErrXxx values above
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("couldn't parse %s, error at line %d: %s", e.Path, e.Line, e.Reason)
}

// Unwrap returns the error kind so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// TokenIssue records a numeric token that could not be parsed and was
// stored as 0.
type TokenIssue struct {
	Line  int
	Token string
}

// Tile is one parsed ASCII grid file.
type Tile struct {
	Path        string
	CellSize    uint32
	NRows       uint32
	NCols       uint32
	OriginX     uint32 // xllcorner
	OriginY     uint32 // yllcorner
	NoDataValue float32

	// Samples holds NRows*NCols values in row-major order. Row 0 is the
	// northernmost row.
	Samples []Sample

	// ObservedRange covers every sample that is not NODATA.
	ObservedRange math.Range

	// InvalidTokens lists numeric tokens that failed to parse.
	InvalidTokens []TokenIssue
}

// Name returns the file name without its directory.
func (t *Tile) Name() string {
	return filepath.Base(t.Path)
}

// Rect returns the area covered by the tile. The header's lower-left y is
// converted to a top-left origin by subtracting the height.
func (t *Tile) Rect() math.Rect {
	w := int(t.NCols) * int(t.CellSize)
	h := int(t.NRows) * int(t.CellSize)
	return math.NewRect(int(t.OriginX), int(t.OriginY)-h, w, h)
}

// At returns the sample at the given column and row.
// Returns NoData if the coordinates are outside the parsed samples.
func (t *Tile) At(col, row int) Sample {
	if col < 0 || row < 0 || col >= int(t.NCols) || row >= int(t.NRows) {
		return NoData
	}
	idx := row*int(t.NCols) + col
	if idx >= len(t.Samples) {
		return NoData
	}
	return t.Samples[idx]
}

// Complete reports whether the file contained exactly NRows*NCols samples.
func (t *Tile) Complete() bool {
	return len(t.Samples) == int(t.NRows)*int(t.NCols)
}

// NoDataCount returns the number of parsed samples without a value.
func (t *Tile) NoDataCount() int {
	n := 0
	for _, s := range t.Samples {
		if s.IsNoData() {
			n++
		}
	}
	return n
}

// ParseASCFile parses an ASCII grid file from disk.
func ParseASCFile(path string) (*Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ASC file: %w", err)
	}
	defer f.Close()
	return ParseASC(path, f)
}

// ParseASC parses an ASCII grid from r. path is only used to label the tile
// and its errors.
//
// The header ends at the first line whose first non-blank character is a
// digit, or a sign or decimal point followed by a digit, so indented rows and
// rows starting with a negative value are read as data. A header line such as
// "-5 3" therefore starts the data instead of failing as an unexpected key.
func ParseASC(path string, r io.Reader) (*Tile, error) {
	p := &ascParser{
		tile: &Tile{
			Path:          path,
			ObservedRange: math.EmptyRange(),
		},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if !p.inNumbers {
			more, err := p.parseHeader(n, line)
			if err != nil {
				return nil, err
			}
			if !more {
				p.inNumbers = true
			}
		}
		if p.inNumbers {
			p.parseNumbers(n, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if !p.inNumbers {
		return nil, p.fail(n+1, ErrIncompleteHeader, "no data rows after header")
	}

	return p.tile, nil
}

type ascParser struct {
	tile      *Tile
	inNumbers bool
}

func (p *ascParser) fail(line int, kind error, reason string) error {
	return &ParseError{Path: p.tile.Path, Line: line, Kind: kind, Reason: reason}
}

// parseHeader handles one header line. It returns false, without consuming
// the line, once the first numeric data line is reached.
func (p *ascParser) parseHeader(n int, line string) (bool, error) {
	t := p.tile

	// Data rows may be indented.
	if startsNumeric(strings.TrimLeft(line, " \t")) {
		if t.NRows == 0 || t.NCols == 0 || t.CellSize == 0 {
			return false, p.fail(n, ErrIncompleteHeader, "Didn't get all expected values")
		}
		size := uint64(t.NRows) * uint64(t.NCols)
		if size > MaxGridSamples {
			return false, p.fail(n, ErrGridTooLarge,
				fmt.Sprintf("%dx%d grid exceeds %d samples", t.NCols, t.NRows, MaxGridSamples))
		}
		t.Samples = make([]Sample, 0, min(size, presizeLimit))
		return false, nil
	}

	pos := strings.IndexByte(line, ' ')
	if pos < 0 {
		return false, p.fail(n, ErrIllFormedHeader, "Ill formed header (no space)")
	}
	key := line[:pos]
	value := strings.TrimLeft(line[pos:], " ")

	switch key {
	case "ncols":
		t.NCols = headerUint(value)
	case "nrows":
		t.NRows = headerUint(value)
	case "cellsize":
		t.CellSize = headerUint(value)
	case "xllcorner", "yllcorner":
		v := leadingInt(value)
		if v < 0 || v > int64(^uint32(0)) {
			return false, p.fail(n, ErrOriginOutOfRange, fmt.Sprintf("%s %d does not fit an unsigned origin", key, v))
		}
		if key == "xllcorner" {
			t.OriginX = uint32(v)
		} else {
			t.OriginY = uint32(v)
		}
	case "NODATA_value":
		t.NoDataValue = headerFloat(value)
	default:
		return false, p.fail(n, ErrUnexpectedKey, fmt.Sprintf("Unexpected key %q", key))
	}
	return true, nil
}

// parseNumbers appends every value on a data line. Blank lines are skipped.
func (p *ascParser) parseNumbers(n int, line string) {
	t := p.tile
	for _, tok := range strings.Fields(line) {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			t.InvalidTokens = append(t.InvalidTokens, TokenIssue{Line: n, Token: tok})
			v = 0
		}
		f := float32(v)
		if f == t.NoDataValue {
			t.Samples = append(t.Samples, NoData)
			continue
		}
		t.ObservedRange.Extend(float64(f))
		t.Samples = append(t.Samples, Value(f))
	}
}

// startsNumeric reports whether a line begins a data row: a digit, or a
// sign or decimal point followed by a digit.
func startsNumeric(line string) bool {
	if line == "" {
		return false
	}
	if isDigit(line[0]) {
		return true
	}
	switch line[0] {
	case '-', '+', '.':
		return len(line) > 1 && isDigit(line[1])
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// leadingInt parses the integer prefix of s and ignores the rest
// ("400000.0" yields 400000). Returns 0 when there is no integer prefix.
func leadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// headerUint parses a grid dimension. Negative or oversized values become 0
// and are caught by the completeness check.
func headerUint(s string) uint32 {
	v := leadingInt(s)
	if v < 0 || v > int64(^uint32(0)) {
		return 0
	}
	return uint32(v)
}

func headerFloat(s string) float32 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0
	}
	return float32(v)
}
