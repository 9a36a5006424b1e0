package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectAccount     = "account"
	ObjectConsumption = "consumption"
	ObjectBill        = "bill"
	ObjectPayment     = "payment"
	ObjectReport      = "report"
)

const (
	ActionAccountView   = "account.view"
	ActionAccountUpdate = "account.update"
	ActionAccountList   = "account.list"

	ActionConsumptionView   = "consumption.view"
	ActionConsumptionIngest = "consumption.ingest"

	ActionBillView     = "bill.view"
	ActionBillGenerate = "bill.generate"

	ActionPaymentView   = "payment.view"
	ActionPaymentCreate = "payment.create"
	ActionPaymentList   = "payment.list"

	ActionReportView   = "report.view"
	ActionReportCreate = "report.create"
	ActionReportList   = "report.list"
	ActionReportUpdate = "report.update"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject, roleName, err := s.resolveActor(ctx, actor)
	if err != nil {
		return err
	}

	if err := s.ensureGrouping(subject, roleName); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("subject", subject),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}

	return nil
}

func (s *ServiceImpl) resolveActor(ctx context.Context, actor string) (string, string, error) {
	if actor == "system" {
		return actor, "role:system", nil
	}
	if strings.HasPrefix(actor, "user:") {
		userIDRaw := strings.TrimPrefix(actor, "user:")
		userID, err := snowflake.ParseString(userIDRaw)
		if err != nil || userID == 0 {
			return "", "", ErrInvalidActor
		}
		role, err := s.roleForUser(ctx, userID)
		if err != nil {
			return "", "", err
		}
		roleName := fmt.Sprintf("role:%s", strings.ToLower(role))
		return actor, roleName, nil
	}
	return "", "", ErrInvalidActor
}

func (s *ServiceImpl) roleForUser(ctx context.Context, userID snowflake.ID) (string, error) {
	var row struct {
		Role string `gorm:"column:role"`
	}
	if err := s.db.WithContext(ctx).Raw(
		`SELECT role FROM users WHERE id = ? LIMIT 1`,
		userID,
	).Scan(&row).Error; err != nil {
		return "", err
	}

	role := strings.TrimSpace(row.Role)
	if role == "" {
		return "", ErrForbidden
	}
	return role, nil
}

func (s *ServiceImpl) ensureGrouping(subject string, roleName string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if rule[1] != roleName {
			params := make([]interface{}, 0, len(rule))
			for _, value := range rule {
				params = append(params, value)
			}
			_, _ = s.enforcer.RemoveGroupingPolicy(params...)
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName)
	return err
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Customers act on their own account scope; ownership is
		// checked by the handlers, casbin gates the capability.
		{"role:customer", ObjectAccount, ActionAccountView},
		{"role:customer", ObjectAccount, ActionAccountUpdate},
		{"role:customer", ObjectConsumption, ActionConsumptionView},
		{"role:customer", ObjectBill, ActionBillView},
		{"role:customer", ObjectPayment, ActionPaymentView},
		{"role:customer", ObjectPayment, ActionPaymentCreate},
		{"role:customer", ObjectReport, ActionReportView},
		{"role:customer", ObjectReport, ActionReportCreate},

		// Employees run the operational dashboard.
		{"role:employee", ObjectAccount, ActionAccountView},
		{"role:employee", ObjectAccount, ActionAccountUpdate},
		{"role:employee", ObjectAccount, ActionAccountList},
		{"role:employee", ObjectConsumption, ActionConsumptionView},
		{"role:employee", ObjectConsumption, ActionConsumptionIngest},
		{"role:employee", ObjectBill, ActionBillView},
		{"role:employee", ObjectBill, ActionBillGenerate},
		{"role:employee", ObjectPayment, ActionPaymentView},
		{"role:employee", ObjectPayment, ActionPaymentList},
		{"role:employee", ObjectReport, ActionReportView},
		{"role:employee", ObjectReport, ActionReportList},
		{"role:employee", ObjectReport, ActionReportUpdate},

		// Admins hold every employee capability plus payment creation.
		{"role:admin", ObjectAccount, ActionAccountView},
		{"role:admin", ObjectAccount, ActionAccountUpdate},
		{"role:admin", ObjectAccount, ActionAccountList},
		{"role:admin", ObjectConsumption, ActionConsumptionView},
		{"role:admin", ObjectConsumption, ActionConsumptionIngest},
		{"role:admin", ObjectBill, ActionBillView},
		{"role:admin", ObjectBill, ActionBillGenerate},
		{"role:admin", ObjectPayment, ActionPaymentView},
		{"role:admin", ObjectPayment, ActionPaymentCreate},
		{"role:admin", ObjectPayment, ActionPaymentList},
		{"role:admin", ObjectReport, ActionReportView},
		{"role:admin", ObjectReport, ActionReportCreate},
		{"role:admin", ObjectReport, ActionReportList},
		{"role:admin", ObjectReport, ActionReportUpdate},

		// System automation (migrations, seeding) bypasses user scoping.
		{"role:system", ObjectConsumption, ActionConsumptionIngest},
		{"role:system", ObjectBill, ActionBillGenerate},
	}

	for _, policy := range policies {
		if len(policy) < 3 {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
