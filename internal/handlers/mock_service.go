package handlers

import (
	"context"
	"time"

	"power_monitor/internal/models"
	"power_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpRes   service.SignUpResult
	signUpErr   error
	genToken    string
	genTokenErr error
	parseIdent  service.Identity
	parseErr    error

	lastSignUp     service.SignUpParams
	lastGenEmail   string
	lastGenPass    string
	lastRemember   bool
	lastParseToken string
}

func (m *mockAuth) SignUp(ctx context.Context, p service.SignUpParams) (service.SignUpResult, error) {
	m.lastSignUp = p
	return m.signUpRes, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, email, password string, rememberMe bool) (string, error) {
	m.lastGenEmail = email
	m.lastGenPass = password
	m.lastRemember = rememberMe
	return m.genToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.lastParseToken = token
	return m.parseIdent, m.parseErr
}

type mockSettings struct {
	getSettings models.PowerSettings
	getErr      error
	updated     models.PowerSettings
	updateErr   error

	lastUpdate  service.UpdateSettingsParams
	updateCalls int
}

func (m *mockSettings) Get(ctx context.Context) (models.PowerSettings, error) {
	return m.getSettings, m.getErr
}
func (m *mockSettings) Update(ctx context.Context, p service.UpdateSettingsParams) (models.PowerSettings, error) {
	m.lastUpdate = p
	m.updateCalls++
	return m.updated, m.updateErr
}

type mockCost struct {
	estimate service.CostEstimate
	err      error

	lastDevice string
	lastHours  float64
}

func (m *mockCost) Estimate(ctx context.Context, deviceType string, hours float64) (service.CostEstimate, error) {
	m.lastDevice = deviceType
	m.lastHours = hours
	return m.estimate, m.err
}

type mockMonitoring struct {
	readings []models.DeviceReading
	err      error
}

func (m *mockMonitoring) LatestReadings(ctx context.Context) ([]models.DeviceReading, error) {
	return m.readings, m.err
}

type mockEventLog struct {
	events []models.AuditEvent
	err    error

	lastFilter service.EventFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.EventFilter) ([]models.AuditEvent, error) {
	m.lastFilter = f
	return m.events, m.err
}

type mockSampler struct{}

func (mockSampler) Run(ctx context.Context, tick time.Duration) {}

// newTestRouter builds a gin engine with all routes and no logger.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}
