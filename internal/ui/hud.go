//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"quakefield/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type clockProvider interface {
	Time() float64
	LastRupture() (float64, bool)
}

const (
	hudPadding    = 10
	hudRowHeight  = 18
	hudButtonSize = 12
)

type hudControl struct {
	control core.ParameterControl
	value   float64
	minus   image.Rectangle
	plus    image.Rectangle
}

// HUD renders readouts and adjustable controls in a panel to the right of
// the simulation view.
type HUD struct {
	sim   core.Sim
	width int

	panel      *ebiten.Image
	pixel      *ebiten.Image
	lastHeight int

	controls    []hudControl
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter

	panelOffsetX int
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControl{control: ctrl})
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	h.layoutControls()
	return h
}

// controlRowsTop returns the y offset where control rows start; readout
// lines occupy the space above.
func (h *HUD) controlRowsTop() int {
	return hudPadding + 5*hudRowHeight
}

func (h *HUD) layoutControls() {
	top := h.controlRowsTop()
	for i := range h.controls {
		y := top + i*hudRowHeight*2
		h.controls[i].minus = image.Rect(hudPadding, y+hudRowHeight-hudButtonSize, hudPadding+hudButtonSize, y+hudRowHeight)
		h.controls[i].plus = image.Rect(h.width-hudPadding-hudButtonSize, y+hudRowHeight-hudButtonSize, h.width-hudPadding, y+hudRowHeight)
	}
}

// Update refreshes control values from the simulation and applies clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.refreshControlValues()
	h.handleInput()
}

func (h *HUD) refreshControlValues() {
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		return
	}
	values := map[string]float64{}
	for _, group := range provider.Parameters().Groups {
		for _, p := range group.Params {
			if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
				values[p.Key] = v
			}
		}
	}
	for i := range h.controls {
		if v, ok := values[h.controls[i].control.Key]; ok {
			h.controls[i].value = v
		}
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	mx -= h.panelOffsetX
	if mx < 0 || mx >= h.width {
		return
	}
	pt := image.Pt(mx, my)
	for i := range h.controls {
		switch {
		case pt.In(h.controls[i].minus):
			h.adjust(i, -1)
		case pt.In(h.controls[i].plus):
			h.adjust(i, +1)
		}
	}
}

func (h *HUD) adjust(i, direction int) {
	ctrl := &h.controls[i]
	next := ctrl.value + float64(direction)*ctrl.control.Step
	if ctrl.control.HasMin && next < ctrl.control.Min {
		next = ctrl.control.Min
	}
	if ctrl.control.HasMax && next > ctrl.control.Max {
		next = ctrl.control.Max
	}
	applied := false
	switch ctrl.control.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil {
			applied = h.intSetter.SetIntParameter(ctrl.control.Key, int(next))
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil {
			applied = h.floatSetter.SetFloatParameter(ctrl.control.Key, next)
		}
	}
	if applied {
		ctrl.value = next
	}
}

// Draw paints the HUD panel anchored at offsetX on the screen.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	h.drawReadouts()
	h.drawControls()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawReadouts() {
	face := basicfont.Face7x13
	y := hudPadding + hudRowHeight

	text.Draw(h.panel, "Seismic Field", face, hudPadding, y, color.White)
	y += hudRowHeight

	if mp, ok := h.sim.(core.MetricsProvider); ok {
		m := mp.Metrics()
		text.Draw(h.panel, fmt.Sprintf("peak   %.3f", m.Peak), face, hudPadding, y, color.White)
		y += hudRowHeight
		text.Draw(h.panel, fmt.Sprintf("energy %.3f", m.Energy), face, hudPadding, y, color.White)
		y += hudRowHeight
	}
	if cp, ok := h.sim.(clockProvider); ok {
		line := fmt.Sprintf("t %.2fs", cp.Time())
		if stamp, ok := cp.LastRupture(); ok {
			line += fmt.Sprintf("  rupture +%.2fs", cp.Time()-stamp)
		}
		text.Draw(h.panel, line, face, hudPadding, y, color.White)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	top := h.controlRowsTop()
	for i := range h.controls {
		ctrl := &h.controls[i]
		y := top + i*hudRowHeight*2

		text.Draw(h.panel, ctrl.control.Label, face, hudPadding, y+hudRowHeight-hudButtonSize-4, color.RGBA{R: 170, G: 170, B: 180, A: 255})

		h.drawButton(ctrl.minus, "-")
		h.drawButton(ctrl.plus, "+")

		value := strconv.FormatFloat(ctrl.value, 'f', -1, 64)
		if ctrl.control.Type == core.ParamTypeInt {
			value = strconv.Itoa(int(ctrl.value))
		}
		text.Draw(h.panel, value, face, hudPadding+hudButtonSize+8, y+hudRowHeight-2, color.White)
	}
}

func (h *HUD) drawButton(r image.Rectangle, label string) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(color.RGBA{R: 60, G: 60, B: 72, A: 255})
	h.panel.DrawImage(h.pixel, op)

	text.Draw(h.panel, label, basicfont.Face7x13, r.Min.X+3, r.Max.Y-2, color.White)
}
