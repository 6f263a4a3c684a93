package space_test

import (
	"strings"
	"testing"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/space"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y funge.Cell) funge.Vector { return funge.Vector{X: x, Y: y} }

func Test_Space(t *testing.T) {
	for _, tc := range []spaceTestCase{
		spaceTest("paging",
			"empty", func(t *testing.T, s *space.Space) {
				s.PageSize = 4
				expectCellAt(t, s, v(0, 0), ' ')
				expectCellAt(t, s, v(-100, 7), ' ')
				_, _, ok := s.Bounds()
				assert.False(t, ok, "expected no bounds")
				assert.Equal(t, 0, s.Pages(), "expected no pages")
			},

			"blank stores allocate nothing", func(t *testing.T, s *space.Space) {
				require.NoError(t, s.Stor(v(1, 1), ' '))
				assert.Equal(t, 0, s.Pages(), "expected no pages")
			},

			"9 -> (1,2)", func(t *testing.T, s *space.Space) {
				require.NoError(t, s.Stor(v(1, 2), 9))
				expectCellAt(t, s, v(1, 2), 9)
				expectCellAt(t, s, v(2, 2), ' ')
				assert.Equal(t, []funge.Vector{v(0, 0)}, s.Dump())
			},

			"negative coordinates", func(t *testing.T, s *space.Space) {
				require.NoError(t, s.Stor(v(-1, -5), 'x'))
				expectCellAt(t, s, v(-1, -5), 'x')
				assert.Equal(t, []funge.Vector{v(-4, -8), v(0, 0)}, s.Dump())
			},

			"bounds", func(t *testing.T, s *space.Space) {
				least, greatest, ok := s.Bounds()
				require.True(t, ok, "expected bounds")
				assert.Equal(t, v(-1, -5), least)
				assert.Equal(t, v(1, 2), greatest)
			},

			"blanking keeps bounds", func(t *testing.T, s *space.Space) {
				require.NoError(t, s.Stor(v(-1, -5), ' '))
				expectCellAt(t, s, v(-1, -5), ' ')
				least, _, _ := s.Bounds()
				assert.Equal(t, v(-1, -5), least)
			},
		),

		spaceTest("limit",
			"fill", func(t *testing.T, s *space.Space) {
				s.PageSize = 2
				s.Limit = 2
				require.NoError(t, s.Stor(v(0, 0), 1))
				require.NoError(t, s.Stor(v(1, 1), 1))
				require.NoError(t, s.Stor(v(2, 0), 1))
			},

			"exceeded", func(t *testing.T, s *space.Space) {
				err := s.Stor(v(0, 2), 1)
				assert.Equal(t, space.LimitError{Pos: v(0, 2), Limit: 2}, err)
				expectCellAt(t, s, v(0, 2), ' ')
				_, greatest, _ := s.Bounds()
				assert.Equal(t, v(2, 1), greatest, "failed store must not grow bounds")
			},

			"existing pages still writable", func(t *testing.T, s *space.Space) {
				require.NoError(t, s.Stor(v(3, 1), 2))
				expectCellAt(t, s, v(3, 1), 2)
			},
		),
	} {
		t.Run(tc.name, func(t *testing.T) {
			var s space.Space
			defer func() {
				if t.Failed() {
					t.Logf("pages: %v", s.Dump())
				}
			}()
			for _, step := range tc.steps {
				if !t.Run(step.name, func(t *testing.T) { step.f(t, &s) }) {
					break
				}
			}
		})
	}
}

func Test_Space_Wrap(t *testing.T) {
	var s space.Space
	require.NoError(t, s.Stor(v(0, 0), '>'))
	require.NoError(t, s.Stor(v(9, 4), '@'))

	for _, tc := range []struct {
		name       string
		pos, delta funge.Vector
		expect     funge.Vector
	}{
		{"inside", v(3, 3), funge.East, v(3, 3)},
		{"off east", v(10, 2), funge.East, v(0, 2)},
		{"off west", v(-1, 2), funge.West, v(9, 2)},
		{"off south", v(4, 5), funge.South, v(4, 0)},
		{"off north", v(4, -1), funge.North, v(4, 4)},
		{"diagonal", v(10, 3), v(1, 1), v(7, 0)},
		{"knight", v(10, 4), v(2, 1), v(2, 0)},
		{"box ahead", v(-3, 2), funge.East, v(-3, 2)},
		{"never meets", v(20, 20), funge.East, v(20, 20)},
		{"zero delta", v(20, 2), v(0, 0), v(20, 2)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, s.Wrap(tc.pos, tc.delta))
		})
	}
}

func Test_Space_LoadProgram(t *testing.T) {
	for _, tc := range []struct {
		name   string
		src    string
		expect map[funge.Vector]funge.Cell
		least  funge.Vector
		most   funge.Vector
	}{
		{
			name: "unix lines",
			src:  "12\n3 4\n",
			expect: map[funge.Vector]funge.Cell{
				v(0, 0): '1', v(1, 0): '2',
				v(0, 1): '3', v(1, 1): ' ', v(2, 1): '4',
			},
			least: v(0, 0), most: v(2, 1),
		},
		{
			name: "dos and mac lines",
			src:  "a\r\nb\rc\r\r\nd",
			expect: map[funge.Vector]funge.Cell{
				v(0, 0): 'a', v(0, 1): 'b', v(0, 2): 'c', v(0, 3): ' ', v(0, 4): 'd',
			},
			least: v(0, 0), most: v(0, 4),
		},
		{
			name: "form feeds ignored",
			src:  "x\fy\n\fz",
			expect: map[funge.Vector]funge.Cell{
				v(0, 0): 'x', v(1, 0): 'y', v(0, 1): 'z',
			},
			least: v(0, 0), most: v(1, 1),
		},
		{
			name: "leading spaces",
			src:  "   @",
			expect: map[funge.Vector]funge.Cell{
				v(0, 0): ' ', v(3, 0): '@',
			},
			least: v(3, 0), most: v(3, 0),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var s space.Space
			require.NoError(t, s.LoadProgram(strings.NewReader(tc.src)))
			for pos, val := range tc.expect {
				expectCellAt(t, &s, pos, val)
			}
			least, most, ok := s.Bounds()
			require.True(t, ok, "expected bounds")
			assert.Equal(t, tc.least, least, "least bound")
			assert.Equal(t, tc.most, most, "greatest bound")
		})
	}
}

func expectCellAt(t *testing.T, s *space.Space, pos funge.Vector, val funge.Cell) {
	assert.Equal(t, val, s.Load(pos), "expected value @%v", pos)
}

func spaceTest(name string, args ...interface{}) (tc spaceTestCase) {
	tc.name = name
	for i := 0; i < len(args); i++ {
		var step spaceTestStep
		step.name = args[i].(string)
		if i++; i >= len(args) {
			panic("spaceTest: missing function argument after name")
		}
		step.f = args[i].(func(t *testing.T, s *space.Space))
		tc.steps = append(tc.steps, step)
	}
	return tc
}

type spaceTestCase struct {
	name  string
	steps []spaceTestStep
}

type spaceTestStep struct {
	name string
	f    func(t *testing.T, s *space.Space)
}

func Test_Space_Adrift(t *testing.T) {
	var s space.Space
	assert.True(t, s.Adrift(v(0, 0), funge.East), "empty space")

	require.NoError(t, s.Stor(v(0, 0), '>'))
	require.NoError(t, s.Stor(v(9, 4), '@'))
	assert.False(t, s.Adrift(v(3, 3), funge.East))
	assert.False(t, s.Adrift(v(-3, 2), funge.East), "box ahead")
	assert.False(t, s.Adrift(v(12, 2), funge.East), "box behind wraps")
	assert.True(t, s.Adrift(v(20, 20), funge.East))
	assert.True(t, s.Adrift(v(20, 2), funge.Vector{}))
}
