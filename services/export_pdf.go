package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
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

func newPDFDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	return maroto.New(cfg)
}

// GenerateMaterialsPDF renders the aggregated material list as a PDF
// document using maroto/v2 and returns the raw PDF bytes.
func GenerateMaterialsPDF(data MaterialExportData) ([]byte, error) {
	m := newPDFDocument()

	addLetterhead(m, data.CompanyName, data.CompanyAddress, data.CompanyPhone, data.CompanyEmail)
	addMaterialsHeader(m, data)
	addMaterialsTableHeader(m)
	for i, r := range data.Rows {
		addMaterialsRow(m, r, i%2 == 1)
	}
	addMaterialsSummary(m, data)
	addGeneratedFooter(m, data.GeneratedAt)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// GenerateBOQPDF renders the bill of quantities as a PDF document and
// returns the raw PDF bytes.
func GenerateBOQPDF(data BOQExportData) ([]byte, error) {
	m := newPDFDocument()

	addLetterhead(m, data.CompanyName, data.CompanyAddress, data.CompanyPhone, data.CompanyEmail)
	addBOQHeader(m, data)
	addBOQTableHeader(m)
	for i, r := range data.Rows {
		addBOQRow(m, r, i%2 == 1)
	}
	addBOQSummary(m, data)
	addGeneratedFooter(m, data.GeneratedAt)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addLetterhead prints the company block from the application config.
// Nothing is rendered when no company name is configured.
func addLetterhead(m core.Maroto, name, address, phone, email string) {
	if name == "" {
		return
	}

	contact := phone
	if email != "" {
		if contact != "" {
			contact += "  " + email
		} else {
			contact = email
		}
	}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(
				text.New(name, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(address, props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(
				text.New(contact, props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(3))
}

// addMaterialsHeader adds the title, project name, date and waste note.
func addMaterialsHeader(m core.Maroto, data MaterialExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Material List", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Project: %s", data.ProjectName), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.GeneratedAt), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Waste: %s", data.WasteNote), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 120, Green: 120, Blue: 120},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addMaterialsTableHeader adds the column header row for the material table.
func addMaterialsTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(3).Add(
				text.New("Material", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Quantity", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unit Price", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Cost", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Source Items", headerTextLeft),
			).WithStyle(&headerCell),
		),
	)
}

// addMaterialsRow adds one material line, striping every other row.
func addMaterialsRow(m core.Maroto, r MaterialExportRow, striped bool) {
	var cellStyle *props.Cell
	if striped {
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colIndex := col.New(1).Add(text.New(fmt.Sprintf("%d", r.Index), baseText))
	colMaterial := col.New(3).Add(text.New(r.Material, leftText))
	colQty := col.New(1).Add(text.New(formatQty(r.Qty), rightText))
	colUnit := col.New(1).Add(text.New(r.Unit, baseText))
	colPrice := col.New(2).Add(text.New(FormatTRY(r.UnitPrice), rightText))
	colCost := col.New(2).Add(text.New(FormatTRY(r.Cost), rightText))
	colSources := col.New(2).Add(text.New(r.Sources, leftText))

	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colMaterial = colMaterial.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colPrice = colPrice.WithStyle(cellStyle)
		colCost = colCost.WithStyle(cellStyle)
		colSources = colSources.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colIndex,
			colMaterial,
			colQty,
			colUnit,
			colPrice,
			colCost,
			colSources,
		),
	)
}

// addMaterialsSummary adds the material count and total cost rows.
func addMaterialsSummary(m core.Maroto, data MaterialExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Distinct Materials", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(fmt.Sprintf("%d", data.MaterialCount), valueStyle),
			).WithStyle(summaryCell),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Estimated Total Cost", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatTRY(data.TotalCost), valueStyle),
			).WithStyle(summaryCell),
		),
	)
}

// addBOQHeader adds the title, project, client and date lines.
func addBOQHeader(m core.Maroto, data BOQExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Bill of Quantities", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Project: %s", data.ProjectName), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.GeneratedAt), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	if data.ClientName != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Client: %s", data.ClientName), props.Text{
						Size:  8,
						Align: align.Left,
						Color: &props.Color{Red: 120, Green: 120, Blue: 120},
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addBOQTableHeader adds the column header row for the BOQ table.
func addBOQTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Code", headerText),
			).WithStyle(&headerCell),
			col.New(3).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Category", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unit Price", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Total", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addBOQRow adds a single takeoff line, striping every other row.
func addBOQRow(m core.Maroto, r BOQExportRow, striped bool) {
	var cellStyle *props.Cell
	if striped {
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colIndex := col.New(1).Add(text.New(fmt.Sprintf("%d", r.Index), baseText))
	colCode := col.New(1).Add(text.New(r.Code, baseText))
	colDesc := col.New(3).Add(text.New(r.Description, leftText))
	colCategory := col.New(1).Add(text.New(r.Category, baseText))
	colQty := col.New(1).Add(text.New(formatQty(r.Qty), rightText))
	colUnit := col.New(1).Add(text.New(r.Unit, baseText))
	colPrice := col.New(2).Add(text.New(FormatTRY(r.UnitPrice), rightText))
	colTotal := col.New(2).Add(text.New(FormatTRY(r.Total), rightText))

	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colCode = colCode.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colCategory = colCategory.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colPrice = colPrice.WithStyle(cellStyle)
		colTotal = colTotal.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colIndex,
			colCode,
			colDesc,
			colCategory,
			colQty,
			colUnit,
			colPrice,
			colTotal,
		),
	)
}

// addBOQSummary adds the net, VAT and grand total rows.
func addBOQSummary(m core.Maroto, data BOQExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Net Total", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatTRY(data.Totals.Net), valueStyle),
			).WithStyle(summaryCell),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New(fmt.Sprintf("VAT (%.0f%%)", data.Totals.Rate), labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatTRY(data.Totals.VAT), valueStyle),
			).WithStyle(summaryCell),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Grand Total", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatTRY(data.Totals.Gross), valueStyle),
			).WithStyle(summaryCell),
		),
	)
}

// addGeneratedFooter adds the generated-date line at the bottom.
func addGeneratedFooter(m core.Maroto, generatedAt string) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", generatedAt),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
