package services

import (
	"context"
	"time"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ReportService produces portfolio aggregates straight from the database
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// StatusCount is one row of the applications-by-status report
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ProductBreakdown is one row of the applications-by-product report
type ProductBreakdown struct {
	ProductID       uint   `json:"product_id"`
	ProductName     string `json:"product_name"`
	Applications    int64  `json:"applications"`
	RequestedAmount int64  `json:"requested_amount"`
	DisbursedAmount int64  `json:"disbursed_amount"`
}

// ApprovalRatio reports decided application outcomes
type ApprovalRatio struct {
	Approved int64   `json:"approved"`
	Rejected int64   `json:"rejected"`
	Decided  int64   `json:"decided"`
	Ratio    float64 `json:"ratio"`
}

// MonthlyDisbursement is one row of the disbursements-by-month report
type MonthlyDisbursement struct {
	Month  string `json:"month"`
	Count  int64  `json:"count"`
	Amount int64  `json:"amount"`
}

// MonthlyApproval is one row of the approved-amount-by-month report
type MonthlyApproval struct {
	Month  string `json:"month"`
	Count  int64  `json:"count"`
	Amount int64  `json:"amount"`
}

// DashboardSummary is the back-office landing page aggregate
type DashboardSummary struct {
	TotalUsers           int64         `json:"total_users"`
	TotalProducts        int64         `json:"total_products"`
	ActiveProducts       int64         `json:"active_products"`
	TotalApplications    int64         `json:"total_applications"`
	PendingApplications  int64         `json:"pending_applications"`
	ApprovedApplications int64         `json:"approved_applications"`
	RejectedApplications int64         `json:"rejected_applications"`
	TotalDisbursed       int64         `json:"total_disbursed"`
	DisbursedThisMonth   int64         `json:"disbursed_this_month"`
	ByStatus             []StatusCount `json:"by_status"`
}

// ApplicationsByStatus counts applications per workflow status
func (s *ReportService) ApplicationsByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := s.db.WithContext(ctx).Table("loan_applications").
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

// ApplicationsByProduct breaks the portfolio down per product
func (s *ReportService) ApplicationsByProduct(ctx context.Context) ([]ProductBreakdown, error) {
	var rows []ProductBreakdown
	err := s.db.WithContext(ctx).Table("loan_applications").
		Select(`
			loan_applications.product_id,
			loan_products.name as product_name,
			COUNT(*) as applications,
			COALESCE(SUM(loan_applications.requested_amount), 0) as requested_amount,
			COALESCE(SUM(loan_applications.disbursed_amount), 0) as disbursed_amount
		`).
		Joins("LEFT JOIN loan_products ON loan_applications.product_id = loan_products.id").
		Group("loan_applications.product_id, loan_products.name").
		Order("applications DESC").
		Scan(&rows).Error
	return rows, err
}

// GetApprovalRatio reports approved versus rejected decisions. Disbursed
// applications count as approved.
func (s *ReportService) GetApprovalRatio(ctx context.Context) (*ApprovalRatio, error) {
	ratio := &ApprovalRatio{}

	approvedStatuses := []string{
		models.ApplicationStatusApproved,
		models.ApplicationStatusPartiallyDisbursed,
		models.ApplicationStatusFullyDisbursed,
	}

	if err := s.db.WithContext(ctx).Table("loan_applications").
		Where("status IN ?", approvedStatuses).
		Count(&ratio.Approved).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Table("loan_applications").
		Where("status = ?", models.ApplicationStatusRejected).
		Count(&ratio.Rejected).Error; err != nil {
		return nil, err
	}

	ratio.Decided = ratio.Approved + ratio.Rejected
	if ratio.Decided > 0 {
		ratio.Ratio = float64(ratio.Approved) / float64(ratio.Decided)
	}
	return ratio, nil
}

// DisbursementsByMonth sums ledger activity per calendar month between the
// given bounds
func (s *ReportService) DisbursementsByMonth(ctx context.Context, from, to time.Time) ([]MonthlyDisbursement, error) {
	var rows []MonthlyDisbursement
	err := s.db.WithContext(ctx).Table("disbursement_transactions").
		Select("DATE_FORMAT(transaction_date, '%Y-%m') as month, COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Where("transaction_date >= ? AND transaction_date < ?", from, to).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

// ApprovedAmountByMonth sums requested amounts of approved applications per
// calendar month between the given bounds. An application counts in the
// month of its last decision; disbursed applications remain approved.
func (s *ReportService) ApprovedAmountByMonth(ctx context.Context, from, to time.Time) ([]MonthlyApproval, error) {
	approvedStatuses := []string{
		models.ApplicationStatusApproved,
		models.ApplicationStatusPartiallyDisbursed,
		models.ApplicationStatusFullyDisbursed,
	}

	var rows []MonthlyApproval
	err := s.db.WithContext(ctx).Table("loan_applications").
		Select("DATE_FORMAT(updated_at, '%Y-%m') as month, COUNT(*) as count, COALESCE(SUM(requested_amount), 0) as amount").
		Where("status IN ?", approvedStatuses).
		Where("updated_at >= ? AND updated_at < ?", from, to).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

// GetDashboard returns the back-office summary
func (s *ReportService) GetDashboard(ctx context.Context) (*DashboardSummary, error) {
	data := &DashboardSummary{}

	s.db.WithContext(ctx).Table("users").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("loan_products").Count(&data.TotalProducts)
	s.db.WithContext(ctx).Table("loan_products").
		Where("status = ?", models.LoanProductStatusActive).
		Count(&data.ActiveProducts)

	s.db.WithContext(ctx).Table("loan_applications").Count(&data.TotalApplications)
	s.db.WithContext(ctx).Table("loan_applications").
		Where("status IN ?", []string{models.ApplicationStatusNew, models.ApplicationStatusPending, models.ApplicationStatusRequireMoreInfo}).
		Count(&data.PendingApplications)
	s.db.WithContext(ctx).Table("loan_applications").
		Where("status IN ?", []string{models.ApplicationStatusApproved, models.ApplicationStatusPartiallyDisbursed, models.ApplicationStatusFullyDisbursed}).
		Count(&data.ApprovedApplications)
	s.db.WithContext(ctx).Table("loan_applications").
		Where("status = ?", models.ApplicationStatusRejected).
		Count(&data.RejectedApplications)

	s.db.WithContext(ctx).Table("disbursement_transactions").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalDisbursed)

	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("disbursement_transactions").
		Where("transaction_date >= ?", startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.DisbursedThisMonth)

	byStatus, err := s.ApplicationsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	data.ByStatus = byStatus

	return data, nil
}
