package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"marketpos/internal/model"
)

// InvoiceWorkbook renders one purchase invoice as an .xlsx document. The
// sheet carries only already-computed values; nothing here re-derives
// totals or settlement figures.
func InvoiceWorkbook(inv *model.PurchaseInvoice) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Invoice"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	head := [][]interface{}{
		{"Invoice", inv.ID},
		{"Supplier", inv.CompanyName},
		{"Date", inv.Date.Format("2006-01-02")},
		{"Status", inv.Status},
		{},
		{"Code", "Name", "Price", "Quantity", "Total"},
	}
	for i, row := range head {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	rowIdx := len(head) + 1
	for _, item := range inv.Items {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		row := []interface{}{item.Code, item.Name, item.Price.StringFixed(2), item.Quantity, item.Total.StringFixed(2)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
		rowIdx++
	}

	footer := [][]interface{}{
		{},
		{"Total", inv.TotalValue.StringFixed(2)},
		{"Paid", inv.PaidAmount.StringFixed(2)},
		{"Remaining", inv.Remaining.StringFixed(2)},
	}
	for _, row := range footer {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
		rowIdx++
	}

	if len(inv.Payments) > 0 {
		rowIdx++
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		header := []interface{}{"Payment date", "Amount"}
		if err := f.SetSheetRow(sheet, cell, &header); err != nil {
			return nil, err
		}
		rowIdx++
		for _, p := range inv.Payments {
			cell, _ = excelize.CoordinatesToCellName(1, rowIdx)
			row := []interface{}{p.Date.Format("2006-01-02 15:04"), p.Amount.StringFixed(2)}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, err
			}
			rowIdx++
		}
	}

	return f, nil
}

// PriceListWorkbook renders a supplier's full price list as an .xlsx
// document, one product per row.
func PriceListWorkbook(supplier *model.Supplier) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Price list"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Code", "Name", "Price before tax", "Price after tax", "Offer price", "Min threshold"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "H1", fmt.Sprintf("%s (#%d)", supplier.Name, supplier.Code)); err != nil {
		return nil, err
	}

	for i, p := range supplier.Products {
		offer := ""
		if p.HasOffer() {
			offer = p.OfferPrice.StringFixed(2)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			p.Code, p.Name,
			p.PriceBeforeTax.StringFixed(2), p.PriceAfterTax.StringFixed(2),
			offer, p.EffectiveThreshold(),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
