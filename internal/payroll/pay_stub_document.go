package payroll

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"go-hrcore/internal/employee"

	"github.com/jung-kurt/gofpdf"
	"github.com/minio/minio-go/v7"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const pdfContentType = "application/pdf"

// DocumentStore keeps rendered pay-stub documents.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}

type minioStore struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

func NewMinioStore(client *minio.Client, bucket string, ttl time.Duration) DocumentStore {
	return &minioStore{client: client, bucket: bucket, ttl: ttl}
}

func (s *minioStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *minioStore) PresignedURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func payStubObjectKey(stub PayStub) string {
	return fmt.Sprintf("%s/%s/%s.pdf", stub.CompanyID, stub.PayrollCycleID, stub.StubNumber)
}

var amountPrinter = message.NewPrinter(language.Indonesian)

func formatAmount(v int64) string {
	return amountPrinter.Sprintf("%d", v)
}

func renderPayStubPDF(stub PayStub, empl employee.Employee, cycle PayrollCycle) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Pay Stub "+stub.StubNumber)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Cycle: %s", cycle.Name),
		fmt.Sprintf("Period: %s to %s", stub.PeriodStart.Format(dateLayout), stub.PeriodEnd.Format(dateLayout)),
		fmt.Sprintf("Employee: %s (%s)", empl.FullName, empl.EmployeeNumber),
		fmt.Sprintf("Bank: %s %s a/n %s", empl.BankName, empl.BankAccountNumber, empl.BankAccountHolder),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	writeSection := func(title string, rows Breakdown) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)

		names := make([]string, 0, len(rows))
		for name := range rows {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pdf.CellFormat(120, 7, name, "", 0, "L", false, 0, "")
			pdf.CellFormat(50, 7, formatAmount(rows[name]), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.CellFormat(120, 7, "Basic salary", "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, formatAmount(stub.BasicSalary), "", 1, "R", false, 0, "")
	pdf.Ln(2)
	writeSection("Earnings", stub.EarningsBreakdown)
	writeSection("Deductions", stub.DeductionsBreakdown)

	pdf.SetFont("Helvetica", "B", 11)
	totals := [][2]string{
		{"Gross pay", formatAmount(stub.GrossPay)},
		{"Total deductions", formatAmount(stub.TotalDeductions)},
		{"Net pay", formatAmount(stub.NetPay)},
	}
	for _, t := range totals {
		pdf.CellFormat(120, 8, t[0], "T", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, t[1], "T", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
