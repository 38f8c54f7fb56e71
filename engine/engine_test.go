package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/hexlife/model"
	"github.com/sheikhrachel/hexlife/rules"
)

type cell struct {
	q, r  int64
	edge  model.EdgeDir
	state model.Aliveness
}

func at(q, r int64, e model.EdgeDir) model.EdgePos {
	return model.EdgeAt(model.HexCoord{Q: q, R: r}, e)
}

func boardOf(cells ...cell) *model.Board {
	b := model.NewBoard()
	for _, c := range cells {
		b.SetAlive(at(c.q, c.r, c.edge), c.state)
	}
	return b
}

func assertBoard(t *testing.T, got *model.Board, want ...cell) {
	t.Helper()
	expected := boardOf(want...)
	if got.Equal(expected) {
		return
	}
	for _, c := range want {
		if s := got.Liveness(at(c.q, c.r, c.edge)); s != c.state {
			t.Errorf("edge %s is %s, want %s", at(c.q, c.r, c.edge), s, c.state)
		}
	}
	for coord, state := range got.All() {
		for _, e := range model.EdgeDirs {
			if state.Get(e) != model.Dead && expected.Liveness(model.EdgeAt(coord, e)) == model.Dead {
				t.Errorf("unexpected %s edge %s", state.Get(e), model.EdgeAt(coord, e))
			}
		}
	}
	t.FailNow()
}

func TestBirthFromSingleEdge(t *testing.T) {
	cases := []struct {
		name  string
		birth uint32
		want  []cell
	}{
		{
			name:  "births at zero and one",
			birth: 1<<0 | 1<<1,
			want: []cell{
				{0, 0, model.EdgeXY, model.Barren},
				{0, 0, model.EdgeZY, model.Alive},
				{0, 0, model.EdgeZX, model.Alive},
				{1, -1, model.EdgeZX, model.Alive},
				{1, 0, model.EdgeZY, model.Alive},
				{1, 0, model.EdgeZX, model.Alive},
			},
		},
		{
			name:  "births at one",
			birth: 1 << 1,
			want: []cell{
				{0, 0, model.EdgeXY, model.Barren},
				{0, 0, model.EdgeZY, model.Alive},
				{1, -1, model.EdgeZX, model.Alive},
				{1, 0, model.EdgeZY, model.Alive},
				{1, 0, model.EdgeZX, model.Alive},
			},
		},
		{
			// The neighbours have one live neighbour each, so only the
			// untouched edge of the origin hex is born.
			name:  "births at zero",
			birth: 1 << 0,
			want: []cell{
				{0, 0, model.EdgeXY, model.Barren},
				{0, 0, model.EdgeZX, model.Alive},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := boardOf(cell{0, 0, model.EdgeXY, model.Alive})
			rule := rules.MustRule(tc.birth, 0, rules.RegionFour)
			if err := ApplyRule(b, rule); err != nil {
				t.Fatal(err)
			}
			assertBoard(t, b, tc.want...)
		})
	}
}

func TestIsolatedEdgeSurvival(t *testing.T) {
	lone := cell{2, -3, model.EdgeZY, model.Alive}

	t.Run("survives with bit zero", func(t *testing.T) {
		b := boardOf(lone)
		if err := ApplyRule(b, rules.MustRule(0, 1, rules.RegionSix)); err != nil {
			t.Fatal(err)
		}
		assertBoard(t, b, lone)
	})

	t.Run("goes barren without it", func(t *testing.T) {
		b := boardOf(lone)
		if err := ApplyRule(b, rules.MustRule(0, 1<<1, rules.RegionSix)); err != nil {
			t.Fatal(err)
		}
		assertBoard(t, b, cell{2, -3, model.EdgeZY, model.Barren})
	})

	t.Run("dies outright in the two-state model", func(t *testing.T) {
		b := boardOf(lone)
		e := New(WithRefractory(false))
		if _, err := e.Step(b, rules.MustRule(0, 1<<1, rules.RegionSix)); err != nil {
			t.Fatal(err)
		}
		if b.Len() != 0 {
			t.Fatalf("board still holds %d hexes", b.Len())
		}
	})
}

func TestBarrenDecaysRegardlessOfRule(t *testing.T) {
	for _, region := range rules.Regions {
		all := uint32(1)<<(region.Count()+1) - 1
		for _, rule := range []rules.Rule{
			rules.MustRule(0, 0, region),
			rules.MustRule(all, all, region),
		} {
			b := boardOf(
				cell{0, 0, model.EdgeXY, model.Barren},
				cell{0, 0, model.EdgeZY, model.Alive},
				cell{1, 0, model.EdgeZX, model.Alive},
				cell{4, 4, model.EdgeZX, model.Barren},
			)
			if err := ApplyRule(b, rule); err != nil {
				t.Fatal(err)
			}
			for _, pos := range []model.EdgePos{at(0, 0, model.EdgeXY), at(4, 4, model.EdgeZX)} {
				if got := b.Liveness(pos); got != model.Dead {
					t.Fatalf("rule %s: barren edge %s became %s", rule, pos, got)
				}
			}
		}
	}
}

func TestBarrenIsInvisibleToCounting(t *testing.T) {
	// (0,0)/ZY neighbours (0,0)/XY in every region. With births at exactly
	// one neighbour it would be born if the barren edge counted.
	b := boardOf(cell{0, 0, model.EdgeXY, model.Barren})
	if err := ApplyRule(b, rules.MustRule(1<<1, 0, rules.RegionFour)); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected an empty board, got %d hexes", b.Len())
	}

	// A live edge next to a barren one: the barren edge is not counted as a
	// birth target and the live edge sees no neighbours.
	b = boardOf(
		cell{0, 0, model.EdgeXY, model.Barren},
		cell{0, 0, model.EdgeZY, model.Alive},
	)
	if err := ApplyRule(b, rules.MustRule(0, 1, rules.RegionFour)); err != nil {
		t.Fatal(err)
	}
	assertBoard(t, b, cell{0, 0, model.EdgeZY, model.Alive})
}

func TestStepStats(t *testing.T) {
	b := boardOf(
		cell{0, 0, model.EdgeXY, model.Alive},
		cell{7, 7, model.EdgeZX, model.Barren},
	)
	e := New()
	stats, err := e.Step(b, rules.MustRule(1<<1, 0, rules.RegionFour))
	if err != nil {
		t.Fatal(err)
	}
	// Positions: the live edge, its four neighbours, the other dead edge of
	// the origin hex, and the barren edge with its two dead siblings.
	want := Stats{Evaluated: 9, Born: 4, Died: 1, Decayed: 1}
	if stats != want {
		t.Fatalf("Step stats = %+v, want %+v", stats, want)
	}
}

func TestEmptyBoardStaysEmpty(t *testing.T) {
	b := model.NewBoard()
	all := uint32(1)<<11 - 1
	for _, e := range []*Engine{New(), parallelEngine(4)} {
		stats, err := e.Step(b, rules.MustRule(all, all, rules.RegionTen))
		if err != nil {
			t.Fatal(err)
		}
		if b.Len() != 0 || stats != (Stats{}) {
			t.Fatalf("empty board changed: %d hexes, %+v", b.Len(), stats)
		}
	}
}

func parallelEngine(workers int, opts ...Option) *Engine {
	e := New(append([]Option{WithWorkers(workers)}, opts...)...)
	e.parallelMin = 0
	return e
}

func randomBoard(seed uint64, radius int64, density float64) *model.Board {
	rng := rand.New(rand.NewPCG(seed, 0))
	b := model.NewBoard()
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			for _, e := range model.EdgeDirs {
				if rng.Float64() < density {
					b.SetAlive(model.EdgeAt(model.HexCoord{Q: q, R: r}, e), model.Alive)
				}
			}
		}
	}
	return b
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, region := range rules.Regions {
		for _, refractory := range []bool{true, false} {
			rule := rules.MustRule(1<<2|1<<3, 1<<2|1<<3|1<<4, region)
			seq := randomBoard(7, 12, 0.3)
			par := seq.Clone()

			sequential := New(WithRefractory(refractory))
			parallel := parallelEngine(5, WithRefractory(refractory))
			for gen := 0; gen < 8; gen++ {
				seqStats, err := sequential.Step(seq, rule)
				if err != nil {
					t.Fatal(err)
				}
				parStats, err := parallel.Step(par, rule)
				if err != nil {
					t.Fatal(err)
				}
				if !seq.Equal(par) || seqStats != parStats {
					t.Fatalf("rule %s refractory=%v: boards diverge at generation %d", rule, refractory, gen+1)
				}
			}
		}
	}
}

func TestTwoStateModelNeverProducesBarren(t *testing.T) {
	b := randomBoard(11, 8, 0.4)
	e := New(WithRefractory(false))
	rule := rules.MustRule(1<<2, 1<<3, rules.RegionTen)
	for gen := 0; gen < 6; gen++ {
		if _, err := e.Step(b, rule); err != nil {
			t.Fatal(err)
		}
		if census := b.Census(); census[model.Barren] != 0 {
			t.Fatalf("generation %d holds %d barren edges", gen+1, census[model.Barren])
		}
	}
}

func TestDecideRejectsCountOnBarren(t *testing.T) {
	pos := at(0, 0, model.EdgeXY)
	b := boardOf(cell{0, 0, model.EdgeXY, model.Barren}, cell{3, 3, model.EdgeZY, model.Alive})
	before := b.Clone()

	e := New()
	u := updates{
		pos:                    pending{count: 1},
		at(3, 3, model.EdgeZY): pending{},
		at(9, 9, model.EdgeZX): pending{count: 2},
		at(3, 3, model.EdgeXY): pending{},
	}
	_, _, err := e.decide(u, b, rules.MustRule(1<<2, 0, rules.RegionFour))

	var ie *InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvariantError, got %v", err)
	}
	if ie.Pos != pos || !errors.Is(err, rules.ErrBarrenCount) {
		t.Fatalf("unexpected error %v", err)
	}
	if !b.Equal(before) {
		t.Fatal("board changed despite the invariant failure")
	}
}

func TestMergeAddsCounts(t *testing.T) {
	a := updates{
		at(0, 0, model.EdgeXY): pending{count: 2},
		at(1, 0, model.EdgeXY): pending{decay: true},
	}
	b := updates{
		at(0, 0, model.EdgeXY): pending{count: 3},
		at(2, 0, model.EdgeXY): pending{},
	}
	a.merge(b)
	want := updates{
		at(0, 0, model.EdgeXY): pending{count: 5},
		at(1, 0, model.EdgeXY): pending{decay: true},
		at(2, 0, model.EdgeXY): pending{},
	}
	if len(a) != len(want) {
		t.Fatalf("merged %d entries, want %d", len(a), len(want))
	}
	for pos, p := range want {
		if a[pos] != p {
			t.Fatalf("entry %s = %+v, want %+v", pos, a[pos], p)
		}
	}
}
