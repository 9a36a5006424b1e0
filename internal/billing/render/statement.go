package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// StatementData carries everything needed to render a bill statement PDF.
// Monetary values arrive pre-formatted.
type StatementData struct {
	BillNumber   string
	CustomerName string
	Address      string
	Month        string
	Status       string
	Total        string
	Paid         string
	Balance      string
	GeneratedAt  string
	Items        []StatementItem
}

type StatementItem struct {
	ServiceType string
	Usage       string
	Rate        string
	Amount      string
}

// Statement renders a monthly bill as a PDF document.
func Statement(data StatementData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(8, "Utility Bill Statement", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, data.Status, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(25,
		col.New(6).Add(
			text.New("Bill number: "+data.BillNumber, props.Text{Top: 0}),
			text.New("Billing month: "+data.Month, props.Text{Top: 4}),
			text.New("Generated: "+data.GeneratedAt, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New(data.CustomerName, props.Text{Style: fontstyle.Bold}),
			text.New(data.Address, props.Text{Top: 5}),
		),
	)

	m.AddRow(10,
		text.NewCol(4, "Service", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Usage", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(12,
			text.NewCol(4, item.ServiceType, props.Text{Size: 9}),
			text.NewCol(3, item.Usage, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Rate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(7),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(3, data.Total, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(2, "Paid", props.Text{Size: 9}),
		text.NewCol(3, data.Paid, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(2, "Balance due", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(3, data.Balance, props.Text{Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render statement: %w", err)
	}
	return doc.GetBytes(), nil
}
