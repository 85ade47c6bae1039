package hexdump

import (
	"math/rand"
	"testing"

	"cxd/common/colorrange"
	"cxd/common/config"
	C "cxd/common/constant"
)

func indexConfig(firstMatchWins bool) *config.Config {
	cfg := config.Default()
	cfg.StopAtFirstColorFound = firstMatchWins
	return cfg
}

// linearColor is the plain O(n) scan over ranges in input order.
func linearColor(ranges []colorrange.Range, cfg *config.Config, offset int64, b byte) C.Color {
	var color C.Color
	for _, r := range ranges {
		if !r.Contains(offset) {
			continue
		}
		if cfg.StopAtFirstColorFound {
			if r.Color != C.NoColor {
				color = r.Color
				break
			}
			continue
		}
		color = r.Color
	}
	if color != C.NoColor {
		return color
	}
	if b == 0 && cfg.EnableShadowBytes {
		return cfg.ShadowColor
	}
	return cfg.DefaultColor
}

func TestColorForFallback(t *testing.T) {
	tests := []struct {
		name   string
		shadow bool
		b      byte
		want   C.Color
	}{
		{"zero byte with shadow", true, 0x00, C.DarkGrey},
		{"zero byte without shadow", false, 0x00, C.White},
		{"non-zero byte with shadow", true, 0x8e, C.White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.EnableShadowBytes = tt.shadow
			ix := NewIndex([]colorrange.Range{colorrange.New(0, 4, C.Red)}, cfg)
			if got := ix.ColorFor(100, tt.b); got != tt.want {
				t.Errorf("ColorFor(100, %#x) = %q, want %q", tt.b, got, tt.want)
			}
		})
	}
}

func TestColorForSingleRangeIgnoresByteValue(t *testing.T) {
	ix := NewIndex([]colorrange.Range{colorrange.New(10, 5, C.Green)}, config.Default())
	for off := int64(10); off <= 14; off++ {
		for _, b := range []byte{0x00, 0x41, 0xff} {
			if got := ix.ColorFor(off, b); got != C.Green {
				t.Errorf("ColorFor(%d, %#x) = %q, want green", off, b, got)
			}
		}
	}
	if got := ix.ColorFor(15, 0x41); got != C.White {
		t.Errorf("offset past the inclusive end = %q, want white", got)
	}
	if got := ix.ColorFor(9, 0x41); got != C.White {
		t.Errorf("offset before start = %q, want white", got)
	}
}

func TestOverlapPolicy(t *testing.T) {
	ranges := []colorrange.Range{
		colorrange.New(0, 4, C.Red),
		colorrange.New(4, 4, C.Green),
		colorrange.New(0, 4, C.Blue),
	}
	first := NewIndex(ranges, indexConfig(true))
	last := NewIndex(ranges, indexConfig(false))

	if got := first.ColorFor(0, 0xc4); got != C.Red {
		t.Errorf("first match wins: offset 0 = %q, want red", got)
	}
	if got := last.ColorFor(0, 0xc4); got != C.Blue {
		t.Errorf("last match wins: offset 0 = %q, want blue", got)
	}
	if first.ColorFor(2, 1) == last.ColorFor(2, 1) {
		t.Error("switching the tie-break policy must change the color of an overlapped byte")
	}
	for _, ix := range []*Index{first, last} {
		if got := ix.ColorFor(5, 1); got != C.Green {
			t.Errorf("non-overlapped offset 5 = %q, want green", got)
		}
	}
}

// A colorless range is still a match. When first wins it is looked past; when
// last wins it masks an earlier colored range purely because it came later.
// This mirrors the historical policy rather than any notion of specificity.
func TestColorlessRangeQuirk(t *testing.T) {
	first := NewIndex([]colorrange.Range{
		{Start: 0, Length: 4},
		colorrange.New(0, 4, C.Red),
	}, indexConfig(true))
	if got := first.ColorFor(1, 0x41); got != C.Red {
		t.Errorf("first wins past a colorless range = %q, want red", got)
	}

	last := NewIndex([]colorrange.Range{
		colorrange.New(0, 4, C.Red),
		{Start: 0, Length: 4},
	}, indexConfig(false))
	if got := last.ColorFor(1, 0x41); got != C.White {
		t.Errorf("last wins on a colorless range = %q, want the default white", got)
	}
	if got := last.ColorFor(1, 0x00); got != C.DarkGrey {
		t.Errorf("last wins on a colorless range, zero byte = %q, want the shadow color", got)
	}
}

func TestIndexIgnoresInvalidRanges(t *testing.T) {
	ix := NewIndex([]colorrange.Range{
		{Start: 0, Length: 0, Color: C.Red},
		{Start: -5, Length: 10, Color: C.Red},
		{Start: 0, Length: 2, Color: "pink"},
	}, config.Default())
	if got := ix.ColorFor(0, 0x41); got != C.White {
		t.Errorf("invalid ranges should not color anything, got %q", got)
	}
}

func randomRanges(rng *rand.Rand, n int) []colorrange.Range {
	colors := append(C.Palette(), C.NoColor, C.NoColor)
	ranges := make([]colorrange.Range, n)
	for i := range ranges {
		ranges[i] = colorrange.Range{
			Start:  rng.Int63n(2000),
			Length: 1 + rng.Int63n(100),
			Color:  colors[rng.Intn(len(colors))],
		}
	}
	return ranges
}

func TestIndexMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, firstWins := range []bool{true, false} {
		cfg := indexConfig(firstWins)
		for round := 0; round < 5; round++ {
			ranges := randomRanges(rng, 150)
			ix := NewIndex(ranges, cfg)

			cur := &Cursor{}
			for off := int64(0); off < 2200; off++ {
				b := byte(off % 3)
				want := linearColor(ranges, cfg, off, b)
				if got := ix.colorFor(off, b, cur); got != want {
					t.Fatalf("firstWins=%v round %d: sequential offset %d = %q, want %q", firstWins, round, off, got, want)
				}
			}

			// Jumping around must not fool the cursor.
			cur = &Cursor{}
			for i := 0; i < 2000; i++ {
				off := rng.Int63n(2200)
				want := linearColor(ranges, cfg, off, 1)
				if got := ix.colorFor(off, 1, cur); got != want {
					t.Fatalf("firstWins=%v round %d: random offset %d = %q, want %q", firstWins, round, off, got, want)
				}
				if got := ix.ColorFor(off, 1); got != want {
					t.Fatalf("firstWins=%v round %d: ColorFor(%d) = %q, want %q", firstWins, round, off, got, want)
				}
			}
		}
	}
}

func TestIndexMergesAdjacentSegments(t *testing.T) {
	ix := NewIndex([]colorrange.Range{
		colorrange.New(0, 4, C.Red),
		colorrange.New(4, 4, C.Red),
		colorrange.New(8, 4, C.Blue),
	}, config.Default())
	if len(ix.segments) != 2 {
		t.Errorf("segments = %+v, want two", ix.segments)
	}
}

func TestClassify(t *testing.T) {
	for b := 0; b < 256; b++ {
		want := b >= ' ' && b <= '~'
		if got := IsPrintable(byte(b)); got != want {
			t.Errorf("IsPrintable(%#x) = %v", b, got)
		}
	}
	if Glyph('\t', ".") != "." || Glyph('\n', "#") != "#" || Glyph('A', ".") != "A" || Glyph(0x7f, ".") != "." {
		t.Error("Glyph substitutes the wrong bytes")
	}
	if hexByte(0xc4) != "C4" || hexByte(0x0a) != "0A" {
		t.Error("hexByte must render two uppercase digits")
	}
}
