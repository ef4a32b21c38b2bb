package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/paulmach/orb"

	"github.com/Faultbox/siliconia/internal/terrain"
)

func TestParseBBox(t *testing.T) {
	tests := []struct {
		in      string
		want    orb.Bound
		wantErr bool
	}{
		{"0,1,2,3", orb.Bound{Min: orb.Point{0, 1}, Max: orb.Point{2, 3}}, false},
		{" 445000, 525000 ,446000,526000", orb.Bound{Min: orb.Point{445000, 525000}, Max: orb.Point{446000, 526000}}, false},
		{"-1.5,-2,1.5,2", orb.Bound{Min: orb.Point{-1.5, -2}, Max: orb.Point{1.5, 2}}, false},
		{"1,1,1,1", orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 1}}, false},
		{"0,1,2", orb.Bound{}, true},
		{"0,1,2,3,4", orb.Bound{}, true},
		{"0,x,2,3", orb.Bound{}, true},
		{"2,0,1,3", orb.Bound{}, true},
		{"", orb.Bound{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBBox(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBBox(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBBox(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteOBJFile(t *testing.T) {
	mesh := &terrain.Mesh{
		Name:     "a",
		Vertices: []terrain.Vertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{0, 0, 1}},
		},
		Indices:   []uint32{0, 1, 2},
		Transform: mgl32.Ident4(),
	}

	path := filepath.Join(t.TempDir(), "out.obj")
	if err := writeOBJFile(path, []*terrain.Mesh{mesh}); err != nil {
		t.Fatalf("writeOBJFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading OBJ: %v", err)
	}
	if !strings.Contains(string(data), "f 1 2 3\n") {
		t.Errorf("OBJ missing face:\n%s", data)
	}

	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "out.obj")
	if err := writeOBJFile(missing, []*terrain.Mesh{mesh}); err == nil {
		t.Error("expected error for unwritable path")
	}
}
