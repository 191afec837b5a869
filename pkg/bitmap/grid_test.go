package bitmap

import (
	"testing"

	"github.com/matzehuels/bmpedit/pkg/pixel"
)

func TestNew(t *testing.T) {
	g := New(3, 2)
	if g.Width != 3 || g.Height != 2 {
		t.Errorf("New(3, 2) dims = %s, want 3x2", g)
	}
	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}
	for i, c := range g.Pixels {
		if c != pixel.Black {
			t.Errorf("Pixels[%d] = %#06x, want black", i, c)
		}
	}

	if empty := New(0, 5); empty.Len() != 0 {
		t.Errorf("New(0, 5).Len() = %d, want 0", empty.Len())
	}
}

func TestAtSet(t *testing.T) {
	g := New(4, 3)
	g.Set(1, 2, 0xabcdef)

	if got := g.At(1, 2); got != 0xabcdef {
		t.Errorf("At(1, 2) = %#06x, want 0xabcdef", got)
	}
	if got := g.Pixels[2*4+1]; got != 0xabcdef {
		t.Errorf("Pixels[9] = %#06x, want 0xabcdef (row-major layout)", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := Filled(2, 2, pixel.White)
	c := g.Clone()
	c.Set(0, 0, pixel.Black)

	if g.At(0, 0) != pixel.White {
		t.Error("Clone shares pixel storage with the original")
	}
	if !g.Equal(g.Clone()) {
		t.Error("Clone should be Equal to the original")
	}
}

func TestEqual(t *testing.T) {
	a := Filled(2, 3, 1)
	tests := []struct {
		name string
		b    *Grid
		want bool
	}{
		{"same", Filled(2, 3, 1), true},
		{"different pixels", Filled(2, 3, 2), false},
		{"transposed dims", Filled(3, 2, 1), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       *Grid
		wantErr bool
	}{
		{"valid", New(2, 2), false},
		{"zero width", &Grid{Width: 0, Height: 2}, true},
		{"pixel count mismatch", &Grid{Width: 2, Height: 2, Pixels: make([]pixel.Color, 3)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.g.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
