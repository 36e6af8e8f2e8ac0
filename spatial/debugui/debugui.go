// Package debugui provides a Dear ImGui inspector window for spatial maps.
// Call Inspector.Render once per frame between the backend's BeginFrame and EndFrame.
package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hexmap/spatial"
)

// Inspector renders the state of a single Map
type Inspector struct {
	m     *spatial.Map
	title string

	centerX  int32
	centerY  int32
	distance int32

	table        *positionTable
	rowsPerFrame int

	historyFrames int
	history       []float32
	historyIndex  int
}

// NewInspector creates an inspector for m. The position table is refreshed
// rowsPerFrame positions at a time and the occupancy plot keeps historyFrames samples.
func NewInspector(title string, m *spatial.Map, rowsPerFrame, historyFrames int) *Inspector {
	const defaultDistance = 2
	return &Inspector{
		m:             m,
		title:         title,
		distance:      defaultDistance,
		table:         newPositionTable(spatial.Coord{}, defaultDistance),
		rowsPerFrame:  max(rowsPerFrame, 1),
		historyFrames: max(historyFrames, 1),
		history:       make([]float32, max(historyFrames, 1)),
	}
}

// Render draws the inspector window
func (in *Inspector) Render() {
	if !imgui.BeginV(in.title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := in.m.CollectStats()
	in.history[in.historyIndex] = float32(stats.Occupied)
	in.historyIndex = (in.historyIndex + 1) % in.historyFrames

	imgui.Text(fmt.Sprintf("Size: %dx%d (%d cells)", stats.Width, stats.Height, stats.Capacity))
	imgui.Text(fmt.Sprintf("Initialized: %t", stats.Initialized))
	imgui.Text(fmt.Sprintf("Window: %v", stats.Window))
	imgui.Text(fmt.Sprintf("Extent: %v", stats.Extent))
	imgui.Text(fmt.Sprintf("Occupied: %d (%.1f%%)", stats.Occupied, stats.Load()*100))
	imgui.Text(fmt.Sprintf("Rebases: %d  Generation: %d", stats.Rebases, stats.Generation))

	imgui.Separator()
	imgui.Text("Occupancy")
	imgui.PlotLinesFloatPtr("##occupancy", &in.history[0], int32(len(in.history)))

	imgui.Separator()
	in.renderFilter()
	in.table.advance(in.m, in.rowsPerFrame)
	in.renderPositions()

	if imgui.TreeNodeStr("Cells") {
		in.renderCells()
		imgui.TreePop()
	}

	imgui.End()
}

func (in *Inspector) renderFilter() {
	imgui.Text("Center:")
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	imgui.InputInt("##centerX", &in.centerX)
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	imgui.InputInt("##centerY", &in.centerY)

	imgui.Text("Distance:")
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	if imgui.InputInt("##distance", &in.distance) && in.distance < 0 {
		in.distance = 0
	}

	imgui.SameLine()
	if imgui.Button("Rescan") {
		in.table.restart()
	}

	in.table.setFilter(in.center(), int(in.distance))
}

func (in *Inspector) center() spatial.Coord {
	return spatial.Coord{X: int(in.centerX), Y: int(in.centerY)}
}

func (in *Inspector) renderPositions() {
	rows := in.table.rows()
	imgui.Text(fmt.Sprintf("Positions: %d (scans: %d, restarts: %d)", len(rows), in.table.scans, in.table.restarts))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("PositionsTable", 4, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Coord")
		imgui.TableSetupColumn("Z")
		imgui.TableSetupColumn("Value")
		imgui.TableSetupColumn("Distance")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(row.Coord.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Coord.Z()))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%02X", uint8(row.Value)))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Distance))
		}

		imgui.EndTable()
	}
}

// renderCells shows the raw window, one text line per row, offset by half a
// cell per row so the axial layout reads as a hex grid
func (in *Inspector) renderCells() {
	center := in.center()
	window := in.m.Window()

	for y := window.Min.Y; y <= window.Max.Y; y++ {
		var line strings.Builder
		line.WriteString(strings.Repeat(" ", y-window.Min.Y))
		for x := window.Min.X; x <= window.Max.X; x++ {
			c := spatial.Coord{X: x, Y: y}
			switch v := in.m.Get(x, y); {
			case c == center:
				line.WriteString(" **")
			case v == spatial.Empty:
				line.WriteString("  .")
			default:
				fmt.Fprintf(&line, " %02X", uint8(v))
			}
		}
		imgui.Text(line.String())
	}
}
