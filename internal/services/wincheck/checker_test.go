package wincheck

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearch/internal/dependencies/mocks"
	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/selection"
)

type CheckerSuite struct {
	suite.Suite
	rnd     *mocks.MockRandom
	checker *Checker
	grid    *model.Grid
	sel     *model.Selection
}

func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}

func (s *CheckerSuite) SetupTest() {
	s.rnd = mocks.NewMockRandom()
	s.checker = New(s.rnd)
	s.sel = model.NewSelection()

	// C A T X X
	// O X X X X
	// W X X X X
	// X X X X X
	// X X X X X
	s.grid = model.NewGrid(5)
	rows := []string{"CATXX", "OXXXX", "WXXXX", "XXXXX", "XXXXX"}
	for r, row := range rows {
		for c, letter := range []rune(row) {
			s.Require().NoError(s.grid.Set(model.Position{Row: r, Col: c}, letter))
		}
	}
}

func (s *CheckerSuite) selectCells(positions ...model.Position) {
	for _, p := range positions {
		s.Require().NoError(selection.Toggle(s.grid, s.sel, p))
	}
}

func p(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

func (s *CheckerSuite) TestHorizontalMatch() {
	s.selectCells(p(0, 0), p(0, 1), p(0, 2))

	outcome := s.checker.Check(s.grid, s.sel, []string{"CAT", "COW"})

	s.Equal(Found, outcome.Kind)
	s.Equal("CAT", outcome.Word)
	s.Equal([]model.Position{p(0, 0), p(0, 1), p(0, 2)}, outcome.Positions)
}

func (s *CheckerSuite) TestVerticalMatch() {
	s.selectCells(p(2, 0), p(0, 0), p(1, 0))

	outcome := s.checker.Check(s.grid, s.sel, []string{"CAT", "COW"})

	s.Equal(Found, outcome.Kind)
	s.Equal("COW", outcome.Word)
}

func (s *CheckerSuite) TestClickOrderDoesNotMatter() {
	s.selectCells(p(0, 2), p(0, 0), p(0, 1))

	outcome := s.checker.Check(s.grid, s.sel, []string{"CAT"})

	s.Equal(Found, outcome.Kind)
	s.Equal("CAT", outcome.Word)
}

func (s *CheckerSuite) TestScatteredSelectionRejected() {
	// Spells CAT in row-major order but is not a straight run
	s.grid.MustAt(p(1, 1)).Letter = 'A'
	s.grid.MustAt(p(2, 2)).Letter = 'T'
	s.selectCells(p(0, 0), p(1, 1), p(2, 2))

	outcome := s.checker.Check(s.grid, s.sel, []string{"CAT"})

	s.Equal(NoMatch, outcome.Kind)
	s.Equal("CAT", outcome.Word)
}

func (s *CheckerSuite) TestGapRejected() {
	s.grid.MustAt(p(0, 3)).Letter = 'T'
	s.selectCells(p(0, 0), p(0, 1), p(0, 3))

	outcome := s.checker.Check(s.grid, s.sel, []string{"CAT"})

	s.Equal(NoMatch, outcome.Kind)
}

func (s *CheckerSuite) TestUnknownWordRejected() {
	s.selectCells(p(0, 0), p(0, 1))

	outcome := s.checker.Check(s.grid, s.sel, []string{"CAT"})

	s.Equal(NoMatch, outcome.Kind)
	s.Equal("CA", outcome.Word)
}

func (s *CheckerSuite) TestEmptySelection() {
	outcome := s.checker.Check(s.grid, s.sel, []string{"CAT"})
	s.Equal(NoMatch, outcome.Kind)
}

func (s *CheckerSuite) TestApplyMarksCells() {
	s.selectCells(p(0, 0), p(0, 1), p(0, 2), p(4, 4))
	outcome := s.checker.Check(s.grid, s.sel, []string{"CAT"})
	s.Require().Equal(NoMatch, outcome.Kind) // stray (4,4) selected

	s.selectCells(p(4, 4))
	outcome = s.checker.Check(s.grid, s.sel, []string{"CAT"})
	s.Require().Equal(Found, outcome.Kind)

	found := s.checker.Apply(s.grid, s.sel, outcome)

	s.Equal("CAT", found.Text)
	s.Zero(s.sel.Len())
	for _, pos := range outcome.Positions {
		cell := s.grid.MustAt(pos)
		s.Equal(model.CellFound, cell.State)
		s.Require().NotNil(cell.Color)
		s.Equal(found.Color, *cell.Color)
	}
	// Found cells keep the path they were drawn with
	s.Equal(model.SideLeft|model.SideRight, s.grid.MustAt(p(0, 1)).Connections)
}

func (s *CheckerSuite) TestColor() {
	s.rnd.QueueIntn(0, 0, 0)

	color := s.checker.Color()

	s.Equal("#e87d7d", color.Border)
	s.Equal("#ec9393", color.Background)
}

func (s *CheckerSuite) TestIsContiguous() {
	s.True(IsContiguous([]model.Position{p(1, 1)}))
	s.True(IsContiguous([]model.Position{p(1, 1), p(1, 2), p(1, 3)}))
	s.True(IsContiguous([]model.Position{p(0, 4), p(1, 4), p(2, 4)}))
	s.False(IsContiguous([]model.Position{p(0, 0), p(0, 1), p(1, 1)}))
	s.False(IsContiguous([]model.Position{p(0, 0), p(0, 2)}))
	s.False(IsContiguous(nil))
}
