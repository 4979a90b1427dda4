package docgen

import (
	"fmt"
	"time"

	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Badge card size in millimetres.
const (
	BadgeWidth  = 85.0
	BadgeHeight = 54.0
	cropMargin  = 6.0
	// card, two crop rows and maroto's default bottom margin
	badgePageHeight = 100.0
)

type BadgeLayout struct {
	Label   string
	Name    string
	Company string // empty when the visitor gave none
	QR      string
	Stamp   string
}

// BuildBadge lays out a visitor badge. Name and company are transliterated
// before truncation so the limits count printed characters.
func BuildBadge(v models.Visitor, lang i18n.Lang, at time.Time, loc *time.Location) BadgeLayout {
	if loc == nil {
		loc = time.UTC
	}
	b := BadgeLayout{
		Label: Transliterate(i18n.Text(lang, i18n.BadgeGuest)),
		Name:  Truncate(Transliterate(v.FullName), 20, 17),
		QR:    v.QRCodeID,
		Stamp: at.In(loc).Format(dateLayout),
	}
	if v.CompanyName != "" {
		b.Company = Truncate(Transliterate(v.CompanyName), 25, 22)
	}
	return b
}

// RenderBadge renders the card centred on a page just larger than the card,
// with dashed crop lines above and below.
func RenderBadge(b BadgeLayout) ([]byte, error) {
	if b.QR == "" {
		return nil, fmt.Errorf("render badge: missing qr code")
	}
	cfg := config.NewBuilder().
		WithDimensions(BadgeWidth+2*cropMargin, badgePageHeight).
		WithLeftMargin(cropMargin).
		WithTopMargin(cropMargin).
		WithRightMargin(cropMargin).
		Build()
	m := maroto.New(cfg)

	crop := props.Line{Style: linestyle.Dashed, Thickness: 0.2, Color: &props.Color{Red: 200, Green: 200, Blue: 200}}
	card := &props.Cell{BackgroundColor: &props.Color{Red: 250, Green: 250, Blue: 250}}

	m.AddRows(
		line.NewRow(cropMargin, crop),
		row.New(7).Add(text.NewCol(12, b.Label, props.Text{Size: 10, Align: align.Center, Top: 2})).WithStyle(card),
		row.New(8).Add(text.NewCol(12, b.Name, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Center, Top: 1})).WithStyle(card),
		row.New(6).Add(text.NewCol(12, b.Company, props.Text{Size: 8, Align: align.Center})).WithStyle(card),
		row.New(27).Add(
			emptyCol(3),
			code.NewQrCol(6, b.QR, props.Rect{Center: true, Percent: 95}),
			emptyCol(3),
		).WithStyle(card),
		row.New(6).Add(text.NewCol(12, b.Stamp, props.Text{Size: 6, Align: align.Center, Top: 1})).WithStyle(card),
		line.NewRow(cropMargin, crop),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate badge pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func emptyCol(size int) core.Col { return col.New(size) }
