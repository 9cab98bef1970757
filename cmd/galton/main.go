// Command galton runs an interactive bean machine in an Ebiten window.
//
// Left click drops one particle, holding the right button pours a stream.
// C toggles particle-particle collisions, R resets the board and Esc quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/galton/galton"
	"github.com/plus3/galton/galton/debugui"
	debugui_ebiten "github.com/plus3/galton/galton/debugui/ebiten"
)

type Game struct {
	board   *galton.Board
	physics galton.Physics

	ui      *debugui.UI
	backend *debugui_ebiten.ImguiBackend
	width   int
	height  int
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var input debugui.InputCapture
	if g.backend != nil {
		g.backend.Update(g.ui)
		input = g.ui.Input()
	}

	if !input.Keyboard {
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.physics.PairCollisions = !g.physics.PairCollisions
			log.Printf("pair collisions: %t", g.physics.PairCollisions)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.board.Reset()
		}
	}

	if !input.Mouse {
		x, y := ebiten.CursorPosition()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			g.spawn(float64(x), float64(y))
		}
	}

	g.board.AdvanceFrame(g.physics)
	return nil
}

func (g *Game) spawn(x, y float64) {
	_, err := g.board.Spawn(galton.Vec2{X: x, Y: y})
	if err != nil && !errors.Is(err, galton.ErrCapacityExceeded) {
		log.Printf("spawn: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, bin := range g.board.Bins() {
		r := bin.Rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bin.Color, false)
	}
	for _, pin := range g.board.Pins() {
		vector.DrawFilledCircle(screen, float32(pin.Center.X), float32(pin.Center.Y), float32(pin.Radius), galton.PinColor, true)
	}
	for p := range g.board.Particles() {
		vector.DrawFilledCircle(screen, float32(p.Position.X), float32(p.Position.Y), float32(p.Radius), p.Color, true)
	}

	for _, bin := range g.board.Bins() {
		x := int(bin.Rect.X) + 4
		y := int(bin.Rect.Y) + 4
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", bin.Counter), x, y)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.1f%%", bin.Probability), x, y+16)
	}

	tally := g.board.Tally()
	status := fmt.Sprintf("particles %d/%d  collisions %t  FPS %.0f",
		tally.Spawned, g.board.Config().MaxParticles, g.physics.PairCollisions, ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, status, 4, g.height-20)

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(g.width, g.height)
	}
	return g.width, g.height
}

func main() {
	configPath := flag.String("config", "", "YAML config file; GALTON_* variables override it.")
	rows := flag.Int("rows", 0, "Number of pin rows (overrides config).")
	debug := flag.Bool("debug", true, "Show the ImGui debug panels.")
	flag.Parse()

	cfg, err := galton.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *rows > 0 {
		cfg.Rows = *rows
	}

	board, err := galton.NewBoard(cfg)
	if err != nil {
		log.Fatalf("create board: %v", err)
	}
	log.Printf("board %gx%g, %d rows, %d pins, capacity %d",
		cfg.Width, cfg.Height, cfg.Rows, len(board.Pins()), cfg.MaxParticles)

	game := &Game{
		board:   board,
		physics: cfg.Physics,
		width:   int(cfg.Width),
		height:  int(cfg.Height),
	}

	const title = "Galton Board"
	if *debug {
		game.backend = debugui_ebiten.NewImguiBackend(title, game.width, game.height)
		game.ui = debugui.NewUI()
		debugui.AddBoardPanels(game.ui, board, &game.physics)
	} else {
		ebiten.SetWindowSize(game.width, game.height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
