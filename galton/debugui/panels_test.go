package debugui

import (
	"testing"
	"time"

	"github.com/plus3/galton/galton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFloat32(t *testing.T) {
	buf := make([]float32, 0, 4)
	out := toFloat32(buf, []float64{25, 50, 25})
	assert.Equal(t, []float32{25, 50, 25}, out)

	out = toFloat32(out, []float64{1})
	assert.Equal(t, []float32{1}, out)
}

func TestPerformancePanelFrameHistory(t *testing.T) {
	board, err := galton.NewBoard(galton.DefaultConfig())
	require.NoError(t, err)

	p := NewPerformancePanel(board, 4)
	start := p.lastFrameTime
	for i := 1; i <= 6; i++ {
		p.tick(start.Add(time.Duration(i*10) * time.Millisecond))
	}

	assert.InDeltaSlice(t, []float32{10, 10, 10, 10}, p.frameHistory, 1e-3)
	assert.Equal(t, 2, p.frameIndex)
	assert.InDelta(t, 10, p.averageFrameTime(), 1e-3)
}

func TestHistogramPanelExpected(t *testing.T) {
	cfg := galton.DefaultConfig()
	cfg.Rows = 2
	board, err := galton.NewBoard(cfg)
	require.NoError(t, err)

	h := NewHistogramPanel(board)
	assert.Equal(t, []float32{25, 50, 25}, h.expected)
	assert.Len(t, h.observed, 3)
}

func TestBoardPanelTitles(t *testing.T) {
	board, err := galton.NewBoard(galton.DefaultConfig())
	require.NoError(t, err)
	physics := board.Config().Physics

	ui := NewUI()
	AddBoardPanels(ui, board, &physics)

	assert.Equal(t, []string{"Controls", "Histogram", "Performance"}, ui.Titles())
}
