package services

import (
	"bytes"
	"fmt"

	"optimasfibre-web/models"

	"github.com/xuri/excelize/v2"
)

var (
	invoiceColumns = []string{"Invoice #", "Customer", "Email", "Phone", "Invoice Date", "Due Date", "Subtotal", "Tax", "Total", "Status"}
	receiptColumns = []string{"Receipt #", "Invoice #", "Customer", "Email", "Payment Date", "Subtotal", "Tax", "Total", "Amount Paid", "Payment Method"}
)

// InvoicesWorkbook renders an invoice list as xlsx with a totals row.
func InvoicesWorkbook(invoices []models.Invoice) ([]byte, error) {
	rows := make([][]any, 0, len(invoices))
	var total models.Amount
	for _, inv := range invoices {
		rows = append(rows, []any{
			inv.InvoiceNumber, inv.CustomerName, inv.CustomerEmail, inv.CustomerPhone,
			inv.InvoiceDate, inv.DueDate,
			inv.Subtotal.InexactFloat64(), inv.Tax.InexactFloat64(), inv.Total.InexactFloat64(),
			string(inv.Status),
		})
		total = models.NewAmount(total.Add(inv.Total.Decimal))
	}
	return workbook("Invoices", invoiceColumns, rows, 9, total)
}

func ReceiptsWorkbook(receipts []models.Receipt) ([]byte, error) {
	rows := make([][]any, 0, len(receipts))
	var paid models.Amount
	for _, r := range receipts {
		rows = append(rows, []any{
			r.ReceiptNumber, r.InvoiceNumber, r.CustomerName, r.CustomerEmail, r.PaymentDate,
			r.Subtotal.InexactFloat64(), r.Tax.InexactFloat64(), r.Total.InexactFloat64(),
			r.AmountPaid.InexactFloat64(), r.PaymentMethod,
		})
		paid = models.NewAmount(paid.Add(r.AmountPaid.Decimal))
	}
	return workbook("Receipts", receiptColumns, rows, 9, paid)
}

// workbook writes header, rows and a final "Total" row whose sum sits in
// column sumCol (1-based).
func workbook(sheet string, header []string, rows [][]any, sumCol int, sum models.Amount) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, err
	}

	for r, row := range rows {
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", r+2, err)
		}
	}

	totalRow := len(rows) + 2
	label, _ := excelize.CoordinatesToCellName(1, totalRow)
	sumCell, _ := excelize.CoordinatesToCellName(sumCol, totalRow)
	if err := f.SetCellValue(sheet, label, "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, sumCell, sum.InexactFloat64()); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, label, sumCell, bold); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
