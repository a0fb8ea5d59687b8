package orders

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

var exportHeader = []any{"ID", "User", "Project", "Address", "Date", "Status"}

// ExportXLSX writes rows as a single-sheet workbook.
func ExportXLSX(w io.Writer, rows []Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("orders: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("orders: write header: %w", err)
	}
	for i, order := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("orders: cell for row %d: %w", i, err)
		}
		values := []any{order.ID, order.User.Name, order.Project, order.Address, order.Date, order.Status.Label()}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("orders: write %s: %w", order.ID, err)
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "F", 22); err != nil {
		return fmt.Errorf("orders: column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("orders: write workbook: %w", err)
	}
	return nil
}
