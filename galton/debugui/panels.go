package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/galton/galton"
)

// AddBoardPanels adds the control, histogram and performance windows for
// board. The control window edits *physics in place; the caller passes it
// to every AdvanceFrame.
func AddBoardPanels(ui *UI, board *galton.Board, physics *galton.Physics) {
	controls := &ControlPanel{board: board, physics: physics}
	histogram := NewHistogramPanel(board)
	perf := NewPerformancePanel(board, 120)

	ui.Add("Controls", imgui.NewVec2(10, 10), imgui.NewVec2(260, 170), controls.Render)
	ui.Add("Histogram", imgui.NewVec2(10, 190), imgui.NewVec2(260, 260), histogram.Render)
	ui.Add("Performance", imgui.NewVec2(10, 460), imgui.NewVec2(320, 300), perf.Render)
}

type ControlPanel struct {
	board   *galton.Board
	physics *galton.Physics
}

func (c *ControlPanel) Render() {
	imgui.Checkbox("Pair collisions (C)", &c.physics.PairCollisions)
	imgui.Checkbox("Sink through floor", &c.physics.Disappear)

	loss := float32(c.physics.EnergyLoss)
	imgui.Text("Energy loss:")
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	if imgui.InputFloat("##loss", &loss) {
		c.physics.EnergyLoss = float64(min(max(loss, 0), 1))
	}

	imgui.Separator()
	tally := c.board.Tally()
	imgui.Text(fmt.Sprintf("Spawned: %d / %d", tally.Spawned, c.board.Config().MaxParticles))
	imgui.Text(fmt.Sprintf("Settled: %d", tally.Settled))
	if imgui.Button("Reset (R)") {
		c.board.Reset()
	}
}

// HistogramPanel plots the observed bin shares next to the binomial
// expectation.
type HistogramPanel struct {
	board    *galton.Board
	observed []float32
	expected []float32
}

func NewHistogramPanel(board *galton.Board) *HistogramPanel {
	rows := board.Config().Rows
	h := &HistogramPanel{board: board}
	h.expected = toFloat32(h.expected, galton.ExpectedPercent(rows))
	h.observed = make([]float32, rows+1)
	return h
}

func (h *HistogramPanel) Render() {
	rows := h.board.Config().Rows
	hist := h.board.Histogram()
	h.observed = toFloat32(h.observed, hist.Percent)

	imgui.Text("Observed (%)")
	imgui.PlotHistogramFloatPtr("##observed", &h.observed[0], int32(len(h.observed)))
	imgui.Text("Expected (%)")
	imgui.PlotHistogramFloatPtr("##expected", &h.expected[0], int32(len(h.expected)))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Mean:   %.2f (expected %.2f)", hist.Mean, galton.ExpectedMean(rows)))
	imgui.Text(fmt.Sprintf("StdDev: %.2f (expected %.2f)", hist.StdDev, galton.ExpectedStdDev(rows)))
}

// PerformancePanel shows frame times, per-system timings and storage
// counts.
type PerformancePanel struct {
	board         *galton.Board
	frameHistory  []float32
	frameIndex    int
	lastFrameTime time.Time
}

func NewPerformancePanel(board *galton.Board, historyFrames int) *PerformancePanel {
	return &PerformancePanel{
		board:         board,
		frameHistory:  make([]float32, historyFrames),
		lastFrameTime: time.Now(),
	}
}

// tick records the time since the previous call, in milliseconds.
func (p *PerformancePanel) tick(now time.Time) {
	p.frameHistory[p.frameIndex] = float32(now.Sub(p.lastFrameTime).Seconds() * 1000)
	p.frameIndex = (p.frameIndex + 1) % len(p.frameHistory)
	p.lastFrameTime = now
}

func (p *PerformancePanel) averageFrameTime() float32 {
	var sum float32
	for _, ft := range p.frameHistory {
		sum += ft
	}
	return sum / float32(len(p.frameHistory))
}

func (p *PerformancePanel) Render() {
	p.tick(time.Now())

	avg := p.averageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &p.frameHistory[0], int32(len(p.frameHistory)))

	storage := p.board.StorageStats()
	imgui.Text(fmt.Sprintf("Frame: %d", p.board.Frame()))
	imgui.Text(fmt.Sprintf("Entities: %d in %d archetypes", storage.TotalEntityCount, storage.ArchetypeCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Systems", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, s := range p.board.Stats().Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}
		imgui.EndTable()
	}
}

func toFloat32(dst []float32, src []float64) []float32 {
	dst = dst[:0]
	for _, v := range src {
		dst = append(dst, float32(v))
	}
	return dst
}
