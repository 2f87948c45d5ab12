package showcase

import (
	"fmt"

	"github.com/matzehuels/textblock/pkg/block"
)

// Item is one line of an invoice.
type Item struct {
	Description string
	UnitPrice   float64
	Quantity    int
}

// Amount is the price of the line.
func (i Item) Amount() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Invoice holds everything printed on an invoice.
type Invoice struct {
	Date           string
	Number         string
	CompanyName    string
	CompanySlogan  string
	CompanyAddress []string
	BillTo         []string
	ShipTo         []string
	Items          []Item
	TaxRate        float64
}

// Subtotal is the sum of all item amounts.
func (inv Invoice) Subtotal() float64 {
	total := 0.0
	for _, it := range inv.Items {
		total += it.Amount()
	}
	return total
}

// SalesTax is the tax due on the subtotal.
func (inv Invoice) SalesTax() float64 {
	return inv.TaxRate * inv.Subtotal()
}

// Total is the subtotal plus tax.
func (inv Invoice) Total() float64 {
	return inv.Subtotal() + inv.SalesTax()
}

// SampleInvoice returns the invoice shown by the "invoice" demo.
func SampleInvoice() Invoice {
	return Invoice{
		Date:           "2020/01/01",
		Number:         "12345678",
		CompanyName:    "Acme",
		CompanySlogan:  "Where customers are billed",
		CompanyAddress: []string{"Address", "City, State ZIP"},
		BillTo:         []string{"Name", "Address", "City, State ZIP"},
		ShipTo:         []string{"Name", "Address", "City, State ZIP"},
		Items: []Item{
			{Description: "Toilet paper, 13-pack", UnitPrice: 3.95, Quantity: 200},
			{Description: "Coffee, medium ground, 3 lbs", UnitPrice: 6.95, Quantity: 4},
		},
		TaxRate: 0.08,
	}
}

// Invoice page geometry, in columns.
const (
	pageWidth   = 70
	pageMargin  = 2
	titleColumn = 10
	rightColumn = pageWidth - 32
	totalsWidth = 22

	descWidth   = 36
	priceWidth  = 12
	qtyWidth    = 10
	amountWidth = 12
)

func right(v any, w int) block.Block {
	return block.Must(block.Of(v).PadToWidthLeft(w, ' '))
}

func left(v any, w int) block.Block {
	return block.Must(block.Of(v).PadToWidthRight(w, ' '))
}

// field prints a right-aligned title followed by one or more lines.
func field(title string, lines ...string) block.Block {
	t := block.Must(right(title, titleColumn).PadRight(1, ' '))
	return t.BesideTop(block.Block{}.AddMultipleTexts(lines...), ' ')
}

func money(v float64, w int) block.Block {
	return right(fmt.Sprintf("$ %.2f", v), w)
}

func itemLine(it Item) block.Block {
	return left(it.Description, descWidth).
		BesideTop(money(it.UnitPrice, priceWidth), ' ').
		BesideTop(right(it.Quantity, qtyWidth), ' ').
		BesideTop(money(it.Amount(), amountWidth), ' ')
}

// RenderInvoice lays out an invoice on a 70-column page with a two-column
// left margin.
func RenderInvoice(inv Invoice) block.Block {
	company := block.Must(block.Of(inv.CompanyName).
		AddText(inv.CompanySlogan).
		PadBottom(1, ' ')).
		AddMultipleTexts(inv.CompanyAddress...)

	details := block.Must(right("INVOICE", titleColumn).PadBottom(1, ' ')).
		StackLeft(field("DATE", inv.Date), ' ').
		StackLeft(field("INVOICE #", inv.Number), ' ')

	top := block.Must(company.PadTop(2, ' ')).
		InFrontOf(block.Must(details.PadLeft(rightColumn, ' ')), ' ')

	addresses := field("BILL TO", inv.BillTo...).
		InFrontOf(block.Must(field("SHIP TO", inv.ShipTo...).PadLeft(rightColumn, ' ')), ' ')

	rule := block.Must(block.Empty(pageWidth, 1, '─'))
	header := left("DESCRIPTION", descWidth).
		BesideTop(right("UNIT PRICE", priceWidth), ' ').
		BesideTop(right("QUANTITY", qtyWidth), ' ').
		BesideTop(right("AMOUNT", amountWidth), ' ')

	items := block.Block{}
	for _, it := range inv.Items {
		items = items.StackLeft(itemLine(it), ' ')
	}
	lines := header.StackLeft(rule, ' ').StackLeft(items, ' ').StackLeft(rule, ' ')

	thin := block.Must(block.Empty(totalsWidth, 1, '─'))
	thick := block.Must(block.Empty(totalsWidth, 1, '═'))
	totals := block.Must(block.Of("SUBTOTAL").BesideTop(money(inv.Subtotal(), priceWidth), ' ').
		StackRight(thin, ' ').
		StackRight(block.Of("TAX RATE").BesideTop(right(fmt.Sprintf("%.0f %%", inv.TaxRate*100), priceWidth), ' '), ' ').
		StackRight(thin, ' ').
		StackRight(block.Of("SALES TAX").BesideTop(money(inv.SalesTax(), priceWidth), ' '), ' ').
		StackRight(thin, ' ').
		StackRight(block.Of("TOTAL").BesideTop(money(inv.Total(), priceWidth), ' '), ' ').
		StackRight(thick, ' ').
		PadToWidthLeft(pageWidth, ' '))

	page := block.Must(top.PadBottom(3, ' ')).StackLeft(addresses, ' ')
	page = block.Must(page.PadBottom(3, ' ')).StackLeft(lines, ' ').StackLeft(totals, ' ')
	return block.Must(page.PadLeft(pageMargin, ' '))
}
