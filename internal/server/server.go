package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/griddesk/griddesk/internal/auth"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	"github.com/griddesk/griddesk/internal/auth/session"
	"github.com/griddesk/griddesk/internal/authorization"
	"github.com/griddesk/griddesk/internal/billing"
	billingdomain "github.com/griddesk/griddesk/internal/billing/domain"
	"github.com/griddesk/griddesk/internal/config"
	"github.com/griddesk/griddesk/internal/consumption"
	consumptiondomain "github.com/griddesk/griddesk/internal/consumption/domain"
	"github.com/griddesk/griddesk/internal/customer"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	"github.com/griddesk/griddesk/internal/employee"
	employeedomain "github.com/griddesk/griddesk/internal/employee/domain"
	"github.com/griddesk/griddesk/internal/observability"
	obsmiddleware "github.com/griddesk/griddesk/internal/observability/logger"
	obsmetrics "github.com/griddesk/griddesk/internal/observability/metrics"
	obstracing "github.com/griddesk/griddesk/internal/observability/tracing"
	"github.com/griddesk/griddesk/internal/payment"
	paymentdomain "github.com/griddesk/griddesk/internal/payment/domain"
	"github.com/griddesk/griddesk/internal/ratelimit"
	"github.com/griddesk/griddesk/internal/reference"
	referencedomain "github.com/griddesk/griddesk/internal/reference/domain"
	"github.com/griddesk/griddesk/internal/report"
	reportdomain "github.com/griddesk/griddesk/internal/report/domain"
	"github.com/griddesk/griddesk/internal/signup"
	signupdomain "github.com/griddesk/griddesk/internal/signup/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	auth.Module,
	signup.Module,
	customer.Module,
	employee.Module,
	consumption.Module,
	billing.Module,
	payment.Module,
	report.Module,
	reference.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	genID          *snowflake.Node
	sessions       *session.Manager
	authsvc        authdomain.Service
	authzSvc       authorization.Service
	signupsvc      signupdomain.Service
	customerSvc    customerdomain.Service
	employeeSvc    employeedomain.Service
	consumptionSvc consumptiondomain.Service
	billingSvc     billingdomain.Service
	paymentSvc     paymentdomain.Service
	reportSvc      reportdomain.Service
	refrepo        referencedomain.Repository
	ingestLimiter  *ratelimit.IngestLimiter
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	GenID          *snowflake.Node
	Sessions       *session.Manager
	Authsvc        authdomain.Service
	AuthzSvc       authorization.Service
	Signupsvc      signupdomain.Service
	CustomerSvc    customerdomain.Service
	EmployeeSvc    employeedomain.Service
	ConsumptionSvc consumptiondomain.Service
	BillingSvc     billingdomain.Service
	PaymentSvc     paymentdomain.Service
	ReportSvc      reportdomain.Service
	Refrepo        referencedomain.Repository
	IngestLimiter  *ratelimit.IngestLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		genID:          p.GenID,
		sessions:       p.Sessions,
		authsvc:        p.Authsvc,
		authzSvc:       p.AuthzSvc,
		signupsvc:      p.Signupsvc,
		customerSvc:    p.CustomerSvc,
		employeeSvc:    p.EmployeeSvc,
		consumptionSvc: p.ConsumptionSvc,
		billingSvc:     p.BillingSvc,
		paymentSvc:     p.PaymentSvc,
		reportSvc:      p.ReportSvc,
		refrepo:        p.Refrepo,
		ingestLimiter:  p.IngestLimiter,
	}

	svc.registerPublicRoutes()
	svc.registerAccountRoutes()
	svc.registerConsumptionRoutes()
	svc.registerBillingRoutes()
	svc.registerReportRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerPublicRoutes() {
	s.engine.POST("/signup", s.Signup)
	s.engine.POST("/login", s.Login)

	s.engine.GET("/service-types", s.ListServiceTypes)
	s.engine.GET("/classifications", s.ListClassifications)
	s.engine.GET("/payment-methods", s.ListPaymentMethods)
}

func (s *Server) registerAccountRoutes() {
	s.engine.POST("/logout", s.AuthRequired(), s.Logout)

	s.engine.GET("/getCustId/:username",
		s.AuthRequired(), s.Authorize(authorization.ObjectAccount, authorization.ActionAccountView), s.GetCustomerID)
	s.engine.GET("/customers",
		s.AuthRequired(), s.RequireStaff(), s.Authorize(authorization.ObjectAccount, authorization.ActionAccountList), s.ListCustomers)
	s.engine.PUT("/update-info",
		s.AuthRequired(), s.Authorize(authorization.ObjectAccount, authorization.ActionAccountUpdate), s.UpdateCustomerInfo)
	s.engine.PUT("/update-employee-info",
		s.AuthRequired(), s.RequireStaff(), s.Authorize(authorization.ObjectAccount, authorization.ActionAccountUpdate), s.UpdateEmployeeInfo)

	s.engine.GET("/employee-profile/:employeeId",
		s.AuthRequired(), s.RequireStaff(), s.GetEmployeeProfile)
	s.engine.GET("/employee-profile-by-username/:username",
		s.AuthRequired(), s.RequireStaff(), s.GetEmployeeProfileByUsername)
	s.engine.GET("/employee-stats/:employeeId",
		s.AuthRequired(), s.RequireStaff(), s.GetEmployeeStats)
}

func (s *Server) registerConsumptionRoutes() {
	s.engine.GET("/monthly-consumption/:username",
		s.AuthRequired(), s.Authorize(authorization.ObjectConsumption, authorization.ActionConsumptionView), s.GetMonthlyConsumption)
	s.engine.GET("/getEnergyConsumption/:username/:monthYear",
		s.AuthRequired(), s.Authorize(authorization.ObjectConsumption, authorization.ActionConsumptionView), s.GetEnergyConsumption)
	s.engine.GET("/customer-consumption/:customerId",
		s.AuthRequired(), s.RequireStaff(), s.Authorize(authorization.ObjectConsumption, authorization.ActionConsumptionView), s.GetCustomerConsumption)
	s.engine.POST("/add-consumption",
		s.AuthRequired(), s.RequireStaff(), s.Authorize(authorization.ObjectConsumption, authorization.ActionConsumptionIngest), s.IngestRateLimit(), s.AddConsumption)
}

func (s *Server) registerBillingRoutes() {
	s.engine.POST("/generate-bill",
		s.AuthRequired(), s.RequireStaff(), s.Authorize(authorization.ObjectBill, authorization.ActionBillGenerate), s.GenerateBill)
	s.engine.GET("/customer-bills/:customerId",
		s.AuthRequired(), s.Authorize(authorization.ObjectBill, authorization.ActionBillView), s.GetCustomerBills)
	s.engine.GET("/pending-bills/:username",
		s.AuthRequired(), s.Authorize(authorization.ObjectBill, authorization.ActionBillView), s.GetPendingBills)
	s.engine.GET("/bill-statement/:billId",
		s.AuthRequired(), s.Authorize(authorization.ObjectBill, authorization.ActionBillView), s.GetBillStatement)

	s.engine.POST("/make-payment",
		s.AuthRequired(), s.Authorize(authorization.ObjectPayment, authorization.ActionPaymentCreate), s.MakePayment)
	s.engine.GET("/payment-history/:username",
		s.AuthRequired(), s.Authorize(authorization.ObjectPayment, authorization.ActionPaymentView), s.GetPaymentHistory)
	s.engine.GET("/all-payments",
		s.AuthRequired(), s.RequireStaff(), s.Authorize(authorization.ObjectPayment, authorization.ActionPaymentList), s.ListAllPayments)
}

func (s *Server) registerReportRoutes() {
	s.engine.POST("/report-failure",
		s.AuthRequired(), s.Authorize(authorization.ObjectReport, authorization.ActionReportCreate), s.ReportFailure)
	s.engine.GET("/failure-reports/:username",
		s.AuthRequired(), s.Authorize(authorization.ObjectReport, authorization.ActionReportView), s.GetFailureReports)
	s.engine.GET("/all-failure-reports",
		s.AuthRequired(), s.RequireStaff(), s.Authorize(authorization.ObjectReport, authorization.ActionReportList), s.ListAllFailureReports)
	s.engine.PUT("/update-report-status",
		s.AuthRequired(), s.RequireStaff(), s.Authorize(authorization.ObjectReport, authorization.ActionReportUpdate), s.UpdateReportStatus)
}
