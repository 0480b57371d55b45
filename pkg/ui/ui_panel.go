package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 25.0
	sectionHeight = 25.0
	labelOffset   = 24.0 // labels sit to the right of the widget
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
}

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 {
	return c.Size + 6 // Checkbox size + small margin
}

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 {
	return b.Height + 6
}

// UIPanel lays widgets out top to bottom, grouped in sections. The panel grows
// with its content.
type UIPanel struct {
	X, Y    float64 // Panel position
	Width   float64
	Title   string
	Widgets []UIWidget
	Labels  []string // Labels drawn next to checkboxes, empty for buttons

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []PanelSection
}

// PanelSection groups consecutive widgets under a title.
type PanelSection struct {
	Title      string
	StartIndex int // Widget index where this section starts
	EndIndex   int // Widget index where this section ends (exclusive)
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 200},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	checkbox := NewCheckbox(p.X+10, p.Y+p.Height(), label, value)
	p.Widgets = append(p.Widgets, &CheckboxWrapper{checkbox})
	p.Labels = append(p.Labels, label)
	return checkbox
}

// AddButton adds a full width button to the panel
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+10, p.Y+p.Height(), p.Width-20, 22, label, onClick)
	p.Widgets = append(p.Widgets, &ButtonWrapper{button})
	p.Labels = append(p.Labels, "")
	return button
}

// Height is the panel height needed for everything added so far.
func (p *UIPanel) Height() float64 {
	height := titleHeight + float64(len(p.sections))*sectionHeight
	for _, widget := range p.Widgets {
		height += widget.GetHeight()
	}
	return height
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	for _, widget := range p.Widgets {
		widget.Update()
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	height := p.Height() + 4
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(height),
		2, p.BorderColor, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	for i, section := range p.sections {
		y := p.sectionY(i)
		vector.FillRect(screen,
			float32(p.X+5), float32(y),
			float32(p.Width-10), 20,
			color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
		ebitenutil.DebugPrintAt(screen, section.Title, int(p.X+10), int(y+3))
	}

	for i, widget := range p.Widgets {
		widget.Draw(screen)
		if cw, ok := widget.(*CheckboxWrapper); ok && p.Labels[i] != "" {
			ebitenutil.DebugPrintAt(screen, p.Labels[i], int(cw.X+labelOffset), int(cw.Y))
		}
	}
}

// sectionY is the top of the header of section i. Widgets are placed below the
// header of the section open when they were added.
func (p *UIPanel) sectionY(i int) float64 {
	y := p.Y + titleHeight + float64(i)*sectionHeight
	for _, widget := range p.Widgets[:p.sections[i].StartIndex] {
		y += widget.GetHeight()
	}
	return y
}

// GetCheckboxValue gets the value of a checkbox by index
func (p *UIPanel) GetCheckboxValue(index int) bool {
	if index < 0 || index >= len(p.Widgets) {
		return false
	}
	if cw, ok := p.Widgets[index].(*CheckboxWrapper); ok {
		return cw.Value
	}
	return false
}
