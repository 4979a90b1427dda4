package docgen

import (
	"fmt"
	"time"

	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// RowsPerPage is the table row budget of one landscape A4 page.
const RowsPerPage = 17

const (
	dateLayout      = "02.01.2006 15:04"
	timestampLayout = "02.01.2006 15:04:05"
	clockLayout     = "15:04"
)

// ListInput is what a visitor list document is built from.
type ListInput struct {
	Kind        ListKind
	Lang        i18n.Lang
	CompanyName string
	Visitors    []models.Visitor
	GeneratedAt time.Time
	// Location renders times; nil means UTC.
	Location *time.Location
}

type ListRow struct {
	No      int
	Name    string
	Company string
	Host    string
	Phone   string
	CheckIn string
	Shaded  bool
}

// ListLayout is the document content before rendering. Pages always holds at
// least one page, so an empty list still renders header and count.
type ListLayout struct {
	Title   string
	Company string
	Date    string
	Count   string
	Columns [6]string
	Pages   [][]ListRow
	Footer  string
	Brand   string
}

// BuildList lays out the visitor table in list order.
func BuildList(in ListInput) ListLayout {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	l := in.Lang
	at := in.GeneratedAt.In(loc)
	out := ListLayout{
		Title:   i18n.Text(l, in.Kind.titleKey()),
		Company: fmt.Sprintf("%s: %s", i18n.Text(l, i18n.PDFCompany), in.CompanyName),
		Date:    fmt.Sprintf("%s: %s", i18n.Text(l, i18n.PDFDate), at.Format(dateLayout)),
		Count:   i18n.Textf(l, i18n.PeopleCount, len(in.Visitors)),
		Columns: [6]string{
			i18n.Text(l, i18n.ColNo),
			i18n.Text(l, i18n.ColName),
			i18n.Text(l, i18n.ColCompany),
			i18n.Text(l, i18n.ColHost),
			i18n.Text(l, i18n.ColPhone),
			i18n.Text(l, i18n.ColCheckIn),
		},
		Footer: i18n.Textf(l, i18n.PDFGenerated, at.Format(timestampLayout)),
		Brand:  i18n.Text(l, i18n.PDFFooter),
	}

	var current []ListRow
	for i, v := range in.Visitors {
		if len(current) == RowsPerPage {
			out.Pages = append(out.Pages, current)
			current = nil
		}
		current = append(current, ListRow{
			No:      i + 1,
			Name:    Truncate(v.FullName, 20, 17),
			Company: Truncate(orDash(v.CompanyName), 15, 12),
			Host:    Truncate(orDash(v.HostName), 15, 12),
			Phone:   orDash(v.Phone),
			CheckIn: v.CheckInTime.In(loc).Format(clockLayout),
			Shaded:  i%2 == 0,
		})
	}
	return withLastPage(out, current)
}

func withLastPage(out ListLayout, current []ListRow) ListLayout {
	if current == nil {
		current = []ListRow{}
	}
	out.Pages = append(out.Pages, current)
	return out
}

var (
	titleFill = &props.Color{Red: 240, Green: 240, Blue: 240}
	headFill  = &props.Color{Red: 220, Green: 220, Blue: 220}
	shadeFill = &props.Color{Red: 248, Green: 248, Blue: 248}
	grey      = &props.Color{Red: 128, Green: 128, Blue: 128}
)

// column widths on the 12-column grid: No, name, company, host, phone, check-in
var listCols = [6]int{1, 3, 2, 2, 2, 2}

// RenderList renders a layout as a landscape A4 PDF.
func RenderList(l ListLayout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()
	m := maroto.New(cfg)

	if err := m.RegisterFooter(
		row.New(6).Add(
			text.NewCol(6, Transliterate(l.Footer), props.Text{Size: 8, Color: grey}),
			text.NewCol(6, Transliterate(l.Brand), props.Text{Size: 8, Color: grey, Align: align.Right}),
		),
	); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	for _, rows := range l.Pages {
		p := page.New().Add(listHeader(l)...)
		for _, r := range rows {
			p.Add(listRow(r))
		}
		m.AddPages(p)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate list pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func listHeader(l ListLayout) []core.Row {
	bold := props.Text{Size: 10, Style: fontstyle.Bold, Top: 2}
	head := row.New(9).WithStyle(&props.Cell{BackgroundColor: headFill})
	for i, c := range l.Columns {
		head.Add(text.NewCol(listCols[i], Transliterate(c), bold))
	}
	return []core.Row{
		row.New(16).Add(
			text.NewCol(12, Transliterate(l.Title), props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Center, Top: 4}),
		).WithStyle(&props.Cell{BackgroundColor: titleFill}),
		row.New(4),
		row.New(7).Add(
			text.NewCol(8, Transliterate(l.Company), props.Text{Size: 12}),
			text.NewCol(4, Transliterate(l.Count), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
		),
		row.New(7).Add(text.NewCol(12, l.Date, props.Text{Size: 12})),
		row.New(4),
		head,
		line.NewRow(2, props.Line{Thickness: 0.5}),
	}
}

func listRow(r ListRow) core.Row {
	t := props.Text{Size: 9, Top: 1.5}
	out := row.New(7).Add(
		text.NewCol(listCols[0], fmt.Sprint(r.No), t),
		text.NewCol(listCols[1], Transliterate(r.Name), t),
		text.NewCol(listCols[2], Transliterate(r.Company), t),
		text.NewCol(listCols[3], Transliterate(r.Host), t),
		text.NewCol(listCols[4], r.Phone, t),
		text.NewCol(listCols[5], r.CheckIn, t),
	)
	if r.Shaded {
		out.WithStyle(&props.Cell{BackgroundColor: shadeFill})
	}
	return out
}
