package report

import (
	"context"
	"fmt"
	"time"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/features/audit"
	"go-cra/internal/features/request"
	"go-cra/internal/workflow"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type ReportService interface {
	ExportRequests(ctx context.Context, filterKey string) ([]byte, string, error)
}

type ReportServiceImpl struct {
	RequestRepo  request.RequestRepository
	AuditService audit.AuditService
}

func NewReportService(requestRepo request.RequestRepository, auditService audit.AuditService) ReportService {
	return &ReportServiceImpl{
		RequestRepo:  requestRepo,
		AuditService: auditService,
	}
}

var requestColumns = []string{
	"Request No", "Title", "Customer", "Product Type", "Priority",
	"Quantity", "Unit", "Status", "Created By", "Created At", "Updated At",
}

// ExportRequests renders the request register as an XLSX workbook with a
// detail sheet and a per-status summary sheet.
func (s *ReportServiceImpl) ExportRequests(ctx context.Context, filterKey string) ([]byte, string, error) {
	filter := bson.M{}
	if filterKey != "" {
		if st := workflow.Status(filterKey); st.Valid() {
			filter["status"] = st
		}
	}

	requests, err := s.RequestRepo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Requests"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	for i, col := range requestColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	statusCounts := map[workflow.Status]int{}
	for rowIdx, req := range requests {
		statusCounts[req.Status]++
		values := []interface{}{
			req.RequestNo,
			req.Title,
			req.CustomerName,
			req.ProductType,
			req.Priority,
			req.Quantity,
			req.Unit,
			string(req.Status),
			req.CreatedBy,
			req.CreatedAt.Format("2006-01-02 15:04:05"),
			req.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range requestColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	summarySheet := "Status Summary"
	if _, err := f.NewSheet(summarySheet); err == nil {
		f.SetCellValue(summarySheet, "A1", "Status")
		f.SetCellValue(summarySheet, "B1", "Count")
		f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)

		row := 2
		for _, st := range workflow.AllStatuses {
			if statusCounts[st] == 0 {
				continue
			}
			f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), string(st))
			f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), statusCounts[st])
			row++
		}
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Total")
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), len(requests))
		f.SetColWidth(summarySheet, "A", "A", 24)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("requests_%s.xlsx", time.Now().Format("20060102_150405"))

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "requests", "export", map[string]common_models.Change{
		"filter": {New: filterKey},
		"rows":   {New: len(requests)},
	})

	return buffer.Bytes(), filename, nil
}
