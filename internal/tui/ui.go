package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/records"
	"github.com/mcoot/wordsearch/internal/services/timer"
)

const (
	originX   = 2
	originY   = 2
	cellWidth = 3

	// Redraw on every timer sample so the clock ticks per frame
	frameInterval = timer.FrameInterval

	helpLine = "Enter/Space submit  Esc clear  0 new puzzle  1 word list  q quit"
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleMessage  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// UI is a terminal front-end for one local player. Mouse presses and drags
// select cells; the keyboard drives everything else.
type UI struct {
	screen   tcell.Screen
	games    game.ControllerInterface
	records  records.ServiceInterface
	sound    Sound
	logger   *slog.Logger
	playerID model.PlayerID
	opts     game.NewGameOptions

	game     *model.Game
	bestTime string
	message  string

	pressed  bool
	lastCell model.Position
}

// New creates a UI drawing on screen. The screen must already be initialised.
func New(
	screen tcell.Screen,
	games game.ControllerInterface,
	records records.ServiceInterface,
	sound Sound,
	logger *slog.Logger,
	playerID model.PlayerID,
	opts game.NewGameOptions,
) *UI {
	if sound == nil {
		sound = Silent{}
	}
	return &UI{
		screen:   screen,
		games:    games,
		records:  records,
		sound:    sound,
		logger:   logger,
		playerID: playerID,
		opts:     opts,
	}
}

// Start creates the first puzzle
func (u *UI) Start(ctx context.Context) error {
	g, err := u.games.NewGame(ctx, u.playerID, u.opts)
	if err != nil {
		return err
	}
	u.game = g
	u.refreshBestTime(ctx)
	u.screen.EnableMouse()
	u.Draw()
	return nil
}

// Run starts a puzzle and processes input until the player quits or ctx ends.
// An unfinished puzzle is abandoned on the way out.
func (u *UI) Run(ctx context.Context) error {
	if err := u.Start(ctx); err != nil {
		return err
	}
	defer u.quit(context.WithoutCancel(ctx))

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !u.HandleEvent(ctx, ev) {
				return nil
			}
			u.Draw()
		case <-ticker.C:
			u.Draw()
		}
	}
}

// Game returns the puzzle being shown
func (u *UI) Game() *model.Game {
	return u.game
}

// Message returns the status line
func (u *UI) Message() string {
	return u.message
}

// HandleEvent applies one terminal event and returns false when the player quits
func (u *UI) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ctx, ev)
	case *tcell.EventMouse:
		u.handleMouse(ctx, ev)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

func (u *UI) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		u.submit(ctx)
		return true
	case tcell.KeyEscape:
		u.apply(u.games.ClearSelection(ctx, u.game.ID, u.playerID))
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case ' ':
		u.submit(ctx)
	case '0':
		if u.apply(u.games.Reset(ctx, u.game.ID, u.playerID)) {
			u.message = "New puzzle"
		}
	case '1':
		if u.apply(u.games.ToggleShowWords(ctx, u.game.ID, u.playerID)) {
			u.message = ""
		}
	}
	return true
}

// handleMouse turns button state changes into press, drag and release
func (u *UI) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos, onGrid := u.cellAt(x, y)

	if ev.Buttons()&tcell.Button1 == 0 {
		if u.pressed {
			u.pressed = false
			u.apply(u.games.Release(ctx, u.game.ID, u.playerID))
		}
		return
	}

	if !onGrid {
		return
	}
	if !u.pressed {
		u.pressed = true
		u.lastCell = pos
		u.apply(u.games.Press(ctx, u.game.ID, u.playerID, pos))
		return
	}
	if pos != u.lastCell {
		u.lastCell = pos
		u.apply(u.games.DragEnter(ctx, u.game.ID, u.playerID, pos))
	}
}

func (u *UI) submit(ctx context.Context) {
	result, err := u.games.Submit(ctx, u.game.ID, u.playerID)
	if err != nil {
		u.showError(err)
		return
	}
	u.game = result.Game

	switch {
	case result.Complete:
		u.sound.Complete()
		u.message = fmt.Sprintf("All words found in %s", result.FinalTime)
		if result.NewBest {
			u.message += " - new best time!"
		}
		u.bestTime = result.BestTime
	case result.Found:
		u.sound.WordFound()
		u.message = "Found " + result.Word
	case result.Word != "":
		u.sound.Miss()
		u.message = "Not a word: " + result.Word
	default:
		u.message = ""
	}
}

// apply stores the game returned by a controller call, reporting errors
func (u *UI) apply(g *model.Game, err error) bool {
	if err != nil {
		u.showError(err)
		return false
	}
	u.game = g
	return true
}

func (u *UI) showError(err error) {
	switch {
	case errors.Is(err, model.ErrGameComplete):
		u.message = "Puzzle solved - press 0 for a new one"
	case errors.Is(err, model.ErrOutOfBounds):
		u.message = "Outside the grid"
	default:
		u.logger.Error("game action failed", slog.String("error", err.Error()))
		u.message = "Error: " + err.Error()
	}
}

func (u *UI) refreshBestTime(ctx context.Context) {
	best, err := u.records.BestTimeDisplay(ctx, u.playerID)
	if err != nil {
		u.logger.Warn("failed to read best time", slog.String("error", err.Error()))
		best = records.NoBestTime
	}
	u.bestTime = best
}

func (u *UI) quit(ctx context.Context) {
	if u.game == nil || u.game.State != model.GameStatePlaying {
		return
	}
	if err := u.games.Abandon(ctx, u.game.ID, u.playerID); err != nil {
		u.logger.Warn("failed to abandon game", slog.String("error", err.Error()))
	}
}

// cellAt maps screen coordinates to a grid position
func (u *UI) cellAt(x, y int) (model.Position, bool) {
	if u.game == nil || x < originX || y < originY {
		return model.Position{}, false
	}
	pos := model.Position{Row: y - originY, Col: (x - originX) / cellWidth}
	return pos, u.game.Grid.IsValidPosition(pos)
}

// CellOrigin returns the screen coordinates of a cell's letter
func CellOrigin(pos model.Position) (x, y int) {
	return originX + pos.Col*cellWidth + 1, originY + pos.Row
}

// Draw renders the current puzzle and status lines
func (u *UI) Draw() {
	if u.game == nil {
		return
	}
	u.screen.Clear()
	g := u.game

	status := fmt.Sprintf("Time %s   Best %s   Found %d/%d",
		u.timeDisplay(), u.bestTime, len(g.Found), len(g.Found)+len(g.Outstanding))
	drawText(u.screen, originX, 0, styleTitle, status)

	g.Grid.ForEach(func(pos model.Position, cell *model.Cell) {
		u.drawCell(pos, cell)
	})

	line := originY + g.Grid.Size + 1
	if g.ShowWords {
		drawText(u.screen, originX, line, styleDefault, "Words: "+strings.Join(g.Outstanding, " "))
		line++
	}
	if u.message != "" {
		drawText(u.screen, originX, line, styleMessage, u.message)
		line++
	}
	drawText(u.screen, originX, line+1, styleHelp, helpLine)

	u.screen.Show()
}

// drawCell pads the letter on both sides; a pad takes the cell style when
// the neighbour on that side is connected so selections read as one block
func (u *UI) drawCell(pos model.Position, cell *model.Cell) {
	style := cellStyle(cell)
	if cell.State == model.CellFound && u.game.Selection.Contains(pos) {
		style = style.Reverse(true)
	}
	x, y := CellOrigin(pos)

	leftStyle, rightStyle := styleDefault, styleDefault
	if cell.State != model.CellFilled && cell.Connections.Has(model.SideLeft) {
		leftStyle = style
	}
	if cell.State != model.CellFilled && cell.Connections.Has(model.SideRight) {
		rightStyle = style
	}

	u.screen.SetContent(x-1, y, ' ', nil, leftStyle)
	u.screen.SetContent(x, y, cell.Letter, nil, style)
	u.screen.SetContent(x+1, y, ' ', nil, rightStyle)
}

func (u *UI) timeDisplay() string {
	if u.game.FinalTime != "" {
		return u.game.FinalTime
	}
	return u.games.ElapsedDisplay(u.game)
}

func cellStyle(cell *model.Cell) tcell.Style {
	switch cell.State {
	case model.CellSelected:
		return styleSelected
	case model.CellFound:
		if cell.Color == nil {
			return styleSelected
		}
		return foundStyle(cell.Color.Background)
	}
	return styleDefault
}

// foundStyle picks black or white text, whichever reads better on the background
func foundStyle(background string) tcell.Style {
	bg, err := colorful.Hex(background)
	if err != nil {
		return styleSelected
	}
	fg := tcell.ColorWhite
	if l, _, _ := bg.Lab(); l > 0.6 {
		fg = tcell.ColorBlack
	}
	return styleDefault.Background(tcell.GetColor(bg.Hex())).Foreground(fg)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
