// Command galton-term runs the bean machine in a terminal.
//
// Left click drops a particle, holding the right button pours a stream.
// c toggles particle-particle collisions, r resets, q or Esc quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/galton/galton"
)

const sampleRate = beep.SampleRate(44100)

type Term struct {
	screen  tcell.Screen
	board   *galton.Board
	physics galton.Physics

	cols, rows int
	leftDown   bool
	pouring    bool
	pourX      int
	pourY      int

	sound       bool
	lastSettled int
}

func NewTerm(board *galton.Board, sound bool) (*Term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerm(screen, board, sound)
}

func newTerm(screen tcell.Screen, board *galton.Board, sound bool) (*Term, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	t := &Term{
		screen:  screen,
		board:   board,
		physics: board.Config().Physics,
	}
	t.cols, t.rows = screen.Size()

	if sound {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			t.sound = true
		}
	}
	return t, nil
}

// toBoard maps a terminal cell to the board coordinate at its centre.
// The last row is reserved for the status line.
func (t *Term) toBoard(x, y int) galton.Vec2 {
	cfg := t.board.Config()
	return galton.Vec2{
		X: (float64(x) + 0.5) * cfg.Width / float64(t.cols),
		Y: (float64(y) + 0.5) * cfg.Height / float64(max(t.rows-1, 1)),
	}
}

func (t *Term) toCell(p galton.Vec2) (int, int) {
	cfg := t.board.Config()
	return int(p.X * float64(t.cols) / cfg.Width), int(p.Y * float64(max(t.rows-1, 1)) / cfg.Height)
}

func (t *Term) spawn(x, y int) {
	_, err := t.board.Spawn(t.toBoard(x, y))
	if err != nil && !errors.Is(err, galton.ErrCapacityExceeded) {
		log.Printf("spawn: %v", err)
	}
}

// handle returns false when the user asked to quit.
func (t *Term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'c':
			t.physics.PairCollisions = !t.physics.PairCollisions
		case 'r':
			t.board.Reset()
			t.lastSettled = 0
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		buttons := ev.Buttons()
		// Drag events repeat Button1, so only the press itself drops.
		left := buttons&tcell.Button1 != 0
		if left && !t.leftDown && !t.pouring {
			t.spawn(x, y)
		}
		t.leftDown = left
		t.pouring = buttons&tcell.Button2 != 0
		t.pourX, t.pourY = x, y

	case *tcell.EventResize:
		t.cols, t.rows = t.screen.Size()
		t.screen.Sync()
	}
	return true
}

func (t *Term) step() {
	if t.pouring {
		t.spawn(t.pourX, t.pourY)
	}
	t.board.AdvanceFrame(t.physics)

	settled := t.board.Tally().Settled
	if settled > t.lastSettled {
		t.click()
	}
	t.lastSettled = settled
}

func (t *Term) click() {
	if !t.sound {
		return
	}
	sine, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(15*time.Millisecond), sine))
}

func styleOf(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (t *Term) draw() {
	t.screen.Clear()

	for _, bin := range t.board.Bins() {
		x0, y0 := t.toCell(galton.Vec2{X: bin.Rect.X, Y: bin.Rect.Y})
		x1, y1 := t.toCell(galton.Vec2{X: bin.Rect.X + bin.Rect.W, Y: bin.Rect.Y + bin.Rect.H})
		bg := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(bin.Color.R)/3, int32(bin.Color.G)/3, int32(bin.Color.B)/3))
		for y := y0; y < min(y1, t.rows-1); y++ {
			for x := x0; x < min(x1, t.cols); x++ {
				t.screen.SetContent(x, y, ' ', nil, bg)
			}
		}
		t.print(x0, y0, fmt.Sprintf("%d", bin.Counter), styleOf(galton.CounterColor).Background(tcell.ColorBlack))
	}

	pinStyle := styleOf(galton.PinColor)
	for _, pin := range t.board.Pins() {
		x, y := t.toCell(pin.Center)
		t.screen.SetContent(x, y, '•', nil, pinStyle)
	}

	for p := range t.board.Particles() {
		x, y := t.toCell(p.Position)
		if x < 0 || x >= t.cols || y < 0 || y >= t.rows-1 {
			continue
		}
		t.screen.SetContent(x, y, 'o', nil, styleOf(p.Color))
	}

	tally := t.board.Tally()
	status := fmt.Sprintf(" %d/%d particles  %d settled  collisions %t  [c]ollide [r]eset [q]uit",
		tally.Spawned, t.board.Config().MaxParticles, tally.Settled, t.physics.PairCollisions)
	t.print(0, t.rows-1, status, tcell.StyleDefault.Reverse(true))

	t.screen.Show()
}

func (t *Term) print(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Term) run() {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case <-ticker.C:
			t.step()
			t.draw()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "YAML config file; GALTON_* variables override it.")
	sound := flag.Bool("sound", false, "Click when a particle settles.")
	logPath := flag.String("log", "", "Write logs to this file instead of discarding them.")
	flag.Parse()

	// The board owns the terminal, so logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := galton.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	board, err := galton.NewBoard(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create board: %v\n", err)
		os.Exit(1)
	}

	term, err := NewTerm(board, *sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init terminal: %v\n", err)
		os.Exit(1)
	}
	defer term.screen.Fini()

	term.run()
	log.Printf("quit after %d frames, %d settled", board.Frame(), board.Tally().Settled)
}
