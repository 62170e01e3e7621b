package view

import (
	"github.com/soocke/centroid-marker/ui/model"
	"github.com/soocke/centroid-marker/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the status message, the marked count and the image position.
type StatusBar interface {
	Set(s model.Status)
}

type statusBar struct {
	messageLbl  *TLabelWidget
	markedLbl   *TLabelWidget
	positionLbl *TLabelWidget
}

// NewStatusBar grids the status labels inside a frame spanning span columns at row.
func NewStatusBar(row, span int) StatusBar {
	f := Frame()
	Grid(f, Row(row), Column(0), Columnspan(span), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	GridColumnConfigure(f, 0, Weight(1))
	s := &statusBar{
		messageLbl:  TLabel(Txt("Ready"), Anchor("w"), Style(theme.StyleStatusLabel)),
		positionLbl: TLabel(Txt(""), Width(28), Anchor("e"), Style(theme.StyleStatusLabel)),
		markedLbl:   TLabel(Txt("Marked: 0/0"), Width(16), Anchor("e"), Style(theme.StyleStatusLabel)),
	}
	Grid(s.messageLbl, In(f), Row(0), Column(0), Sticky("we"), Padx("0.2m"))
	Grid(s.positionLbl, In(f), Row(0), Column(1), Sticky("e"), Padx("0.2m"))
	Grid(s.markedLbl, In(f), Row(0), Column(2), Sticky("e"), Padx("0.2m"))
	return s
}

func (s *statusBar) Set(st model.Status) {
	if s == nil || s.messageLbl == nil {
		return
	}
	s.messageLbl.Configure(Txt(st.Message))
	s.markedLbl.Configure(Txt(st.Marked))
	s.positionLbl.Configure(Txt(st.Position))
}
