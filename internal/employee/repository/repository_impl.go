package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/employee/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, employee *domain.Employee) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO employees (id, user_id, position, department, hire_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		employee.ID,
		employee.UserID,
		employee.Position,
		employee.Department,
		employee.HireDate,
		employee.CreatedAt,
		employee.UpdatedAt,
	).Error
}

func (r *repo) InsertSkill(ctx context.Context, db *gorm.DB, skill *domain.Skill) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO employee_skills (id, employee_id, service_type, proficiency, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		skill.ID,
		skill.EmployeeID,
		skill.ServiceType,
		skill.Proficiency,
		skill.CreatedAt,
	).Error
}

func (r *repo) FindByUserID(ctx context.Context, userID snowflake.ID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, user_id, position, department, hire_date, created_at, updated_at
		 FROM employees WHERE user_id = ?`,
		userID,
	).Scan(&employee).Error
	if err != nil {
		return nil, err
	}
	if employee.ID == 0 {
		return nil, nil
	}
	return &employee, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, employee *domain.Employee) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`UPDATE employees SET position = ?, department = ?, updated_at = ? WHERE id = ?`,
		employee.Position,
		employee.Department,
		employee.UpdatedAt,
		employee.ID,
	).Error
}

const profileSelect = `
	SELECT e.id AS employee_id,
	       u.id AS user_id,
	       u.username,
	       u.display_name,
	       u.phone,
	       e.position,
	       e.department,
	       e.hire_date
	FROM employees e
	JOIN users u ON u.id = e.user_id`

func (r *repo) ProfileByID(ctx context.Context, employeeID snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Raw(
		profileSelect+` WHERE e.id = ?`,
		employeeID,
	).Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.EmployeeID == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (r *repo) ProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Raw(
		profileSelect+` WHERE u.username = ?`,
		username,
	).Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.EmployeeID == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (r *repo) Skills(ctx context.Context, employeeID snowflake.ID) ([]domain.Skill, error) {
	var skills []domain.Skill
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, employee_id, service_type, proficiency, created_at
		 FROM employee_skills WHERE employee_id = ? ORDER BY proficiency DESC, service_type`,
		employeeID,
	).Scan(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *repo) Stats(ctx context.Context, employeeID snowflake.ID) (*domain.Stats, error) {
	var counts struct {
		Total    int64 `gorm:"column:total"`
		Resolved int64 `gorm:"column:resolved"`
		Pending  int64 `gorm:"column:pending"`
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total,
		        COUNT(CASE WHEN status = 'Resolved' THEN 1 END) AS resolved,
		        COUNT(CASE WHEN status <> 'Resolved' THEN 1 END) AS pending
		 FROM failure_reports
		 WHERE assigned_employee_id = ?`,
		employeeID,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	monthStart := time.Now().UTC()
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)

	var monthTotal struct {
		Total int64 `gorm:"column:total"`
	}
	err = r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount_cents), 0) AS total
		 FROM payments WHERE paid_at >= ?`,
		monthStart,
	).Scan(&monthTotal).Error
	if err != nil {
		return nil, err
	}

	var recent []domain.RecentPayment
	err = r.db.WithContext(ctx).Raw(
		`SELECT p.id AS payment_id,
		        u.display_name AS customer_name,
		        p.amount_cents,
		        p.method,
		        p.paid_at
		 FROM payments p
		 JOIN customers c ON c.id = p.customer_id
		 JOIN users u ON u.id = c.user_id
		 ORDER BY p.paid_at DESC, p.id DESC
		 LIMIT 5`,
	).Scan(&recent).Error
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		TotalReports:       counts.Total,
		ResolvedReports:    counts.Resolved,
		PendingReports:     counts.Pending,
		MonthPaymentsCents: monthTotal.Total,
		RecentPayments:     recent,
	}, nil
}
