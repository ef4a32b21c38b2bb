package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Faultbox/siliconia/pkg/math"
)

// createTestASC builds an ASCII grid with the given header values and rows.
func createTestASC(ncols, nrows, xll, yll, cellsize int, nodata string, rows ...string) string {
	var b strings.Builder
	b.WriteString("ncols " + itoa(ncols) + "\n")
	b.WriteString("nrows " + itoa(nrows) + "\n")
	b.WriteString("xllcorner " + itoa(xll) + "\n")
	b.WriteString("yllcorner " + itoa(yll) + "\n")
	b.WriteString("cellsize " + itoa(cellsize) + "\n")
	b.WriteString("NODATA_value " + nodata + "\n")
	for _, r := range rows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func parseString(t *testing.T, src string) (*Tile, error) {
	t.Helper()
	return ParseASC("test.asc", strings.NewReader(src))
}

func TestParseASC_Minimal(t *testing.T) {
	src := createTestASC(2, 2, 0, 0, 1, "-9999", "1 2", "-9999 4")

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}

	if tile.NCols != 2 || tile.NRows != 2 || tile.CellSize != 1 {
		t.Errorf("expected 2x2 grid with cellsize 1, got %dx%d cellsize %d", tile.NCols, tile.NRows, tile.CellSize)
	}
	if tile.NoDataValue != -9999 {
		t.Errorf("expected NODATA -9999, got %v", tile.NoDataValue)
	}

	want := []Sample{Value(1), Value(2), NoData, Value(4)}
	if len(tile.Samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(tile.Samples))
	}
	for i, s := range want {
		if tile.Samples[i] != s {
			t.Errorf("sample %d: expected %v, got %v", i, s, tile.Samples[i])
		}
	}

	if tile.ObservedRange.Min != 1 || tile.ObservedRange.Max != 4 {
		t.Errorf("expected observed range 1-4, got %v", tile.ObservedRange)
	}
	if !tile.Complete() {
		t.Error("expected tile to be complete")
	}
	if len(tile.InvalidTokens) != 0 {
		t.Errorf("expected no invalid tokens, got %v", tile.InvalidTokens)
	}
}

func TestParseASC_NegativeOrigin(t *testing.T) {
	src := "ncols 1\nnrows 1\nxllcorner -5\nyllcorner 0\ncellsize 1\n1\n"

	_, err := parseString(t, src)
	if !errors.Is(err, ErrOriginOutOfRange) {
		t.Fatalf("expected ErrOriginOutOfRange, got %v", err)
	}
	var perr *ParseError
	if errors.As(err, &perr) && perr.Line != 3 {
		t.Errorf("expected error at line 3, got %d", perr.Line)
	}
}

func TestParseASC_RectBelowZero(t *testing.T) {
	src := createTestASC(2, 2, 0, 0, 1, "-9999", "1 2", "3 4")

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}
	r := tile.Rect()
	if r.Y != -2 || r.Height != 2 {
		t.Errorf("expected rect y -2 height 2, got %v", r)
	}
}

func TestParseASC_UnexpectedKey(t *testing.T) {
	src := "ncols 2\nnrows 2\nfoo 1\ncellsize 1\n1 2\n3 4\n"

	_, err := parseString(t, src)
	if err == nil {
		t.Fatal("expected error for unexpected key")
	}
	if !errors.Is(err, ErrUnexpectedKey) {
		t.Errorf("expected ErrUnexpectedKey, got %v", err)
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 3 {
		t.Errorf("expected error at line 3, got %d", perr.Line)
	}
	if perr.Path != "test.asc" {
		t.Errorf("expected path test.asc, got %s", perr.Path)
	}
}

func TestParseASC_IncompleteHeader(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{
			name: "data before cellsize",
			src:  "ncols 2\nnrows 2\nyllcorner 10\n1 2\ncellsize 1\n",
			line: 4,
		},
		{
			name: "missing nrows",
			src:  "ncols 2\ncellsize 1\nyllcorner 10\n1 2\n",
			line: 4,
		},
		{
			name: "zero ncols",
			src:  "ncols 0\nnrows 2\ncellsize 1\nyllcorner 10\n1 2\n",
			line: 5,
		},
		{
			name: "header only",
			src:  "ncols 2\nnrows 2\ncellsize 1\nyllcorner 10\n",
			line: 5,
		},
		{
			name: "empty file",
			src:  "",
			line: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseString(t, tt.src)
			if !errors.Is(err, ErrIncompleteHeader) {
				t.Fatalf("expected ErrIncompleteHeader, got %v", err)
			}
			var perr *ParseError
			if errors.As(err, &perr) && perr.Line != tt.line {
				t.Errorf("expected error at line %d, got %d", tt.line, perr.Line)
			}
		})
	}
}

func TestParseASC_IllFormedHeader(t *testing.T) {
	src := "ncols 2\nnrows\ncellsize 1\n1 2\n"

	_, err := parseString(t, src)
	if !errors.Is(err, ErrIllFormedHeader) {
		t.Fatalf("expected ErrIllFormedHeader, got %v", err)
	}
	if !strings.Contains(err.Error(), "error at line 2") {
		t.Errorf("expected line 2 in message, got %q", err.Error())
	}
}

func TestParseASC_HeaderValues(t *testing.T) {
	src := "ncols     3\n" +
		"nrows 1\n" +
		"xllcorner 400000.0\n" +
		"yllcorner    250005\n" +
		"cellsize 5\n" +
		"NODATA_value -3.5\n" +
		"7 -3.5 9\n"

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}
	if tile.NCols != 3 {
		t.Errorf("expected ncols 3, got %d", tile.NCols)
	}
	if tile.OriginX != 400000 {
		t.Errorf("expected xllcorner 400000, got %d", tile.OriginX)
	}
	if tile.OriginY != 250005 {
		t.Errorf("expected yllcorner 250005, got %d", tile.OriginY)
	}
	if tile.NoDataValue != -3.5 {
		t.Errorf("expected NODATA -3.5, got %v", tile.NoDataValue)
	}
	if !tile.Samples[1].IsNoData() {
		t.Errorf("expected sample 1 to be NoData, got %v", tile.Samples[1])
	}
}

func TestParseASC_Rect(t *testing.T) {
	src := createTestASC(4, 2, 100, 50, 5, "-9999", "1 1 1 1", "1 1 1 1")

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}

	r := tile.Rect()
	if r.X != 100 || r.Y != 40 || r.Width != 20 || r.Height != 10 {
		t.Errorf("expected rect (100, 40) 20x10, got %v", r)
	}
}

func TestParseASC_NegativeFirstRow(t *testing.T) {
	src := createTestASC(2, 2, 0, 5, 1, "-9999", "-9999 -9999", "-1.5 3")

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}
	if !tile.Samples[0].IsNoData() || !tile.Samples[1].IsNoData() {
		t.Error("expected first row to be NoData")
	}
	if tile.ObservedRange.Min != -1.5 || tile.ObservedRange.Max != 3 {
		t.Errorf("expected range -1.5-3, got %v", tile.ObservedRange)
	}
}

func TestParseASC_BlankAndCRLFLines(t *testing.T) {
	src := "ncols 2\r\nnrows 2\r\nyllcorner 2\r\ncellsize 1\r\nNODATA_value -9999\r\n" +
		"1 2\r\n" +
		"   \r\n" +
		"\r\n" +
		"3 4 \r\n"

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}
	if len(tile.Samples) != 4 {
		t.Fatalf("expected 4 samples, got %d: %v", len(tile.Samples), tile.Samples)
	}
	if v, _ := tile.Samples[3].Get(); v != 4 {
		t.Errorf("expected last sample 4, got %v", v)
	}
}

func TestParseASC_NoTrailingNewline(t *testing.T) {
	src := "ncols 2\nnrows 1\nyllcorner 1\ncellsize 1\nNODATA_value -9999\n5 6"

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}
	if len(tile.Samples) != 2 {
		t.Errorf("expected 2 samples, got %d", len(tile.Samples))
	}
}

func TestParseASC_InvalidTokenDefaultsToZero(t *testing.T) {
	src := createTestASC(3, 1, 0, 1, 1, "-9999", "5 abc 7")

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}

	if v, ok := tile.Samples[1].Get(); !ok || v != 0 {
		t.Errorf("expected unparsable token to become 0, got %v", tile.Samples[1])
	}
	if tile.ObservedRange.Min != 0 || tile.ObservedRange.Max != 7 {
		t.Errorf("expected range 0-7, got %v", tile.ObservedRange)
	}
	if len(tile.InvalidTokens) != 1 {
		t.Fatalf("expected 1 invalid token, got %d", len(tile.InvalidTokens))
	}
	issue := tile.InvalidTokens[0]
	if issue.Line != 7 || issue.Token != "abc" {
		t.Errorf("expected issue {7 abc}, got %+v", issue)
	}
}

func TestParseASC_SingleColumn(t *testing.T) {
	src := createTestASC(1, 3, 0, 3, 1, "-9999", "1", "2", "3")

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}
	if len(tile.Samples) != 3 {
		t.Errorf("expected 3 samples, got %d", len(tile.Samples))
	}
}

func TestParseASCFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile.asc")
	src := createTestASC(2, 2, 10, 20, 2, "-9999", "1 2", "3 4")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tile, err := ParseASCFile(path)
	if err != nil {
		t.Fatalf("ParseASCFile failed: %v", err)
	}
	if tile.Path != path {
		t.Errorf("expected path %s, got %s", path, tile.Path)
	}
	if tile.Name() != "tile.asc" {
		t.Errorf("expected name tile.asc, got %s", tile.Name())
	}
}

func TestParseASCFile_Missing(t *testing.T) {
	_, err := ParseASCFile("/nonexistent/tile.asc")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTile_At(t *testing.T) {
	src := createTestASC(3, 2, 0, 2, 1, "-9999", "1 2 3", "4 5 6")
	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}

	if v, _ := tile.At(2, 1).Get(); v != 6 {
		t.Errorf("At(2, 1) = %v, want 6", v)
	}
	if !tile.At(3, 0).IsNoData() {
		t.Error("At(3, 0) should be NoData")
	}
	if !tile.At(-1, 0).IsNoData() {
		t.Error("At(-1, 0) should be NoData")
	}
}

func TestSample(t *testing.T) {
	if !NoData.IsNoData() {
		t.Error("NoData.IsNoData() should be true")
	}
	if NoData.Or(-1) != -1 {
		t.Errorf("NoData.Or(-1) = %v, want -1", NoData.Or(-1))
	}
	s := Value(12.5)
	if v, ok := s.Get(); !ok || v != 12.5 {
		t.Errorf("Value(12.5).Get() = %v, %v", v, ok)
	}
	if s.String() != "12.5" {
		t.Errorf("String() = %s, want 12.5", s.String())
	}
	if NoData.String() != "NoData" {
		t.Errorf("String() = %s, want NoData", NoData.String())
	}
}

func TestParseASCFile_Testdata(t *testing.T) {
	tile, err := ParseASCFile(filepath.Join("testdata", "TL4525se.asc"))
	if err != nil {
		t.Fatalf("ParseASCFile failed: %v", err)
	}

	if tile.Name() != "TL4525se.asc" {
		t.Errorf("Name() = %s", tile.Name())
	}
	if !tile.Complete() {
		t.Errorf("expected 12 samples, got %d", len(tile.Samples))
	}
	if tile.OriginX != 445000 || tile.OriginY != 525000 || tile.CellSize != 5 {
		t.Errorf("unexpected header %d %d %d", tile.OriginX, tile.OriginY, tile.CellSize)
	}
	if got := tile.Rect(); got != math.NewRect(445000, 524985, 20, 15) {
		t.Errorf("Rect() = %v", got)
	}
	if !tile.At(3, 0).IsNoData() || !tile.At(2, 2).IsNoData() {
		t.Error("expected NODATA at (3, 0) and (2, 2)")
	}
	if n := tile.NoDataCount(); n != 2 {
		t.Errorf("NoDataCount() = %d, want 2", n)
	}
	if tile.ObservedRange != math.NewRange(float64(float32(11.9)), 14) {
		t.Errorf("ObservedRange = %v", tile.ObservedRange)
	}
}

func TestParseASC_GridTooLarge(t *testing.T) {
	tests := []struct {
		name  string
		ncols string
		nrows string
	}{
		{"product overflows int", "4294967295", "4294967295"},
		{"ten billion cells", "100000", "100000"},
		{"just over the limit", "16385", "16384"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "ncols " + tt.ncols + "\n" +
				"nrows " + tt.nrows + "\n" +
				"xllcorner 0\n" +
				"yllcorner 0\n" +
				"cellsize 1\n" +
				"NODATA_value -9999\n" +
				"1 2\n"

			tile, err := parseString(t, src)
			if !errors.Is(err, ErrGridTooLarge) {
				t.Fatalf("expected ErrGridTooLarge, got %v", err)
			}
			if tile != nil {
				t.Error("expected no tile on failure")
			}
			var perr *ParseError
			if !errors.As(err, &perr) || perr.Line != 7 {
				t.Errorf("expected ParseError at line 7, got %v", err)
			}
		})
	}
}

func TestParseASC_LargeHeaderShortFile(t *testing.T) {
	// Within the limit but far larger than the data present: parses without
	// reserving the whole grid up front.
	src := createTestASC(16384, 16384, 0, 16384, 1, "-9999", "1 2 3")

	tile, err := parseString(t, src)
	if err != nil {
		t.Fatalf("ParseASC failed: %v", err)
	}
	if len(tile.Samples) != 3 {
		t.Errorf("expected 3 samples, got %d", len(tile.Samples))
	}
	if cap(tile.Samples) > presizeLimit {
		t.Errorf("sample capacity %d exceeds presize limit %d", cap(tile.Samples), presizeLimit)
	}
	if tile.Complete() {
		t.Error("short tile reported complete")
	}
}

func TestParseASC_SignedLineEndsHeader(t *testing.T) {
	header := "ncols 2\nnrows 1\ncellsize 1\nyllcorner 1\n"

	t.Run("after complete header", func(t *testing.T) {
		tests := []struct {
			row  string
			want [2]float32
		}{
			{"-5 3", [2]float32{-5, 3}},
			{"+5 3", [2]float32{5, 3}},
			{".5 3", [2]float32{0.5, 3}},
			{"  -5 3", [2]float32{-5, 3}},
		}
		for _, tt := range tests {
			tile, err := parseString(t, header+tt.row+"\n")
			if err != nil {
				t.Fatalf("%q: ParseASC failed: %v", tt.row, err)
			}
			if !tile.Complete() {
				t.Fatalf("%q: expected 2 samples, got %d", tt.row, len(tile.Samples))
			}
			for i, want := range tt.want {
				if v, ok := tile.Samples[i].Get(); !ok || v != want {
					t.Errorf("%q: sample %d = %v, want %v", tt.row, i, tile.Samples[i], want)
				}
			}
		}
	})

	tests := []struct {
		name string
		src  string
		kind error
		line int
	}{
		{"before cellsize", "ncols 2\nnrows 1\n-5 3\ncellsize 1\n", ErrIncompleteHeader, 3},
		{"sign without digit", "ncols 2\nnrows 1\n-x 3\n", ErrUnexpectedKey, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseString(t, tt.src)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			var perr *ParseError
			if errors.As(err, &perr) && perr.Line != tt.line {
				t.Errorf("expected error at line %d, got %d", tt.line, perr.Line)
			}
		})
	}
}
