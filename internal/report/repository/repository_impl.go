package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

const reportColumns = `id, customer_id, service_type, description, status, assigned_employee_id, reported_at, resolution_notes, resolved_at, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, report *domain.FailureReport) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO failure_reports (id, customer_id, service_type, description, status, assigned_employee_id, reported_at, resolution_notes, resolved_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.CustomerID,
		report.ServiceType,
		report.Description,
		report.Status,
		report.AssignedEmployeeID,
		report.ReportedAt,
		report.ResolutionNotes,
		report.ResolvedAt,
		report.CreatedAt,
		report.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, reportID snowflake.ID) (*domain.FailureReport, error) {
	var report domain.FailureReport
	err := r.db.WithContext(ctx).Raw(
		`SELECT `+reportColumns+` FROM failure_reports WHERE id = ?`,
		reportID,
	).Scan(&report).Error
	if err != nil {
		return nil, err
	}
	if report.ID == 0 {
		return nil, nil
	}
	return &report, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, report *domain.FailureReport) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`UPDATE failure_reports
		 SET status = ?, assigned_employee_id = ?, resolution_notes = ?, resolved_at = ?, updated_at = ?
		 WHERE id = ?`,
		report.Status,
		report.AssignedEmployeeID,
		report.ResolutionNotes,
		report.ResolvedAt,
		report.UpdatedAt,
		report.ID,
	).Error
}

func (r *repo) ListByUsername(ctx context.Context, username string, status *string) ([]domain.CustomerView, error) {
	query := `SELECT fr.id, fr.customer_id, fr.service_type, fr.description, fr.status,
		        fr.assigned_employee_id, fr.reported_at, fr.resolution_notes, fr.resolved_at, fr.created_at, fr.updated_at,
		        COALESCE(eu.display_name, '') AS assigned_employee_name
		 FROM failure_reports fr
		 JOIN customers c ON c.id = fr.customer_id
		 JOIN users u ON u.id = c.user_id
		 LEFT JOIN employees e ON e.id = fr.assigned_employee_id
		 LEFT JOIN users eu ON eu.id = e.user_id
		 WHERE u.username = ?`
	args := []interface{}{username}
	if status != nil {
		query += ` AND fr.status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY fr.reported_at DESC`

	var views []domain.CustomerView
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repo) ListAll(ctx context.Context, filter domain.ListFilter) ([]domain.StaffView, error) {
	query := `SELECT fr.id, fr.customer_id, fr.service_type, fr.description, fr.status,
		        fr.assigned_employee_id, fr.reported_at, fr.resolution_notes, fr.resolved_at, fr.created_at, fr.updated_at,
		        u.display_name AS customer_name,
		        u.username,
		        COALESCE(eu.display_name, '') AS assigned_employee_name
		 FROM failure_reports fr
		 JOIN customers c ON c.id = fr.customer_id
		 JOIN users u ON u.id = c.user_id
		 LEFT JOIN employees e ON e.id = fr.assigned_employee_id
		 LEFT JOIN users eu ON eu.id = e.user_id
		 WHERE 1 = 1`
	var args []interface{}
	if filter.Status != nil {
		query += ` AND fr.status = ?`
		args = append(args, *filter.Status)
	}
	if filter.ServiceType != nil {
		query += ` AND fr.service_type = ?`
		args = append(args, *filter.ServiceType)
	}
	query += ` ORDER BY fr.reported_at DESC`

	var views []domain.StaffView
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repo) BestAssignee(ctx context.Context, serviceType string) (*snowflake.ID, error) {
	var result struct {
		EmployeeID snowflake.ID
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT e.id AS employee_id
		 FROM employees e
		 JOIN employee_skills s ON s.employee_id = e.id AND s.service_type = ?
		 LEFT JOIN (
		     SELECT assigned_employee_id, COUNT(*) AS open_count
		     FROM failure_reports
		     WHERE status <> ? AND assigned_employee_id IS NOT NULL
		     GROUP BY assigned_employee_id
		 ) oc ON oc.assigned_employee_id = e.id
		 ORDER BY s.proficiency DESC, COALESCE(oc.open_count, 0) ASC, e.id ASC
		 LIMIT 1`,
		serviceType,
		domain.StatusResolved,
	).Scan(&result).Error
	if err != nil {
		return nil, err
	}
	if result.EmployeeID == 0 {
		return nil, nil
	}
	id := result.EmployeeID
	return &id, nil
}
