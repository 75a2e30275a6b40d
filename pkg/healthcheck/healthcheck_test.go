package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// HealthCheckTestSuite tests check aggregation and the HTTP handlers
type HealthCheckTestSuite struct {
	suite.Suite
}

func (suite *HealthCheckTestSuite) newHealthCheck() *HealthCheck {
	hc := New("1.0.0-test", zap.NewNop())
	hc.SetCacheTTL(0)
	return hc
}

func staticChecker(status Status, message string) Checker {
	return NewCustomChecker("static", func(ctx context.Context) (Status, string, interface{}) {
		return status, message, nil
	})
}

func (suite *HealthCheckTestSuite) TestCheckAggregation() {
	suite.Run("NoCheckers_ShouldBeHealthy", func() {
		// Arrange
		hc := suite.newHealthCheck()

		// Act
		response := hc.Check(context.Background())

		// Assert
		assert.Equal(suite.T(), StatusHealthy, response.Status)
		assert.Empty(suite.T(), response.Checks)
		assert.Equal(suite.T(), "1.0.0-test", response.Version)
	})

	suite.Run("AllHealthy_ShouldBeHealthy", func() {
		// Arrange
		hc := suite.newHealthCheck()
		hc.Register("database", staticChecker(StatusHealthy, ""))
		hc.Register("ai", staticChecker(StatusHealthy, ""))

		// Act
		response := hc.Check(context.Background())

		// Assert
		assert.Equal(suite.T(), StatusHealthy, response.Status)
		assert.Len(suite.T(), response.Checks, 2)
	})

	suite.Run("OneDegraded_ShouldBeDegraded", func() {
		// Arrange
		hc := suite.newHealthCheck()
		hc.Register("database", staticChecker(StatusHealthy, ""))
		hc.Register("ai", staticChecker(StatusDegraded, "slow responses"))

		// Act
		response := hc.Check(context.Background())

		// Assert
		assert.Equal(suite.T(), StatusDegraded, response.Status)
	})

	suite.Run("OneUnhealthy_ShouldBeUnhealthy", func() {
		// Arrange
		hc := suite.newHealthCheck()
		hc.Register("database", staticChecker(StatusHealthy, ""))
		hc.Register("ai", staticChecker(StatusUnhealthy, "connection refused"))

		// Act
		response := hc.Check(context.Background())

		// Assert
		assert.Equal(suite.T(), StatusUnhealthy, response.Status)
	})

	suite.Run("UnhealthyOutranksDegraded", func() {
		// Arrange
		hc := suite.newHealthCheck()
		hc.Register("a", staticChecker(StatusDegraded, ""))
		hc.Register("b", staticChecker(StatusUnhealthy, ""))

		// Act
		response := hc.Check(context.Background())

		// Assert
		assert.Equal(suite.T(), StatusUnhealthy, response.Status)
	})

	suite.Run("CheckerName_ShouldComeFromRegistration", func() {
		// Arrange
		hc := suite.newHealthCheck()
		hc.Register("renamed", staticChecker(StatusHealthy, ""))

		// Act
		response := hc.Check(context.Background())

		// Assert
		require.Len(suite.T(), response.Checks, 1)
		assert.Equal(suite.T(), "renamed", response.Checks[0].Name)
	})
}

func (suite *HealthCheckTestSuite) TestCaching() {
	suite.Run("WithinTTL_ShouldReuseResult", func() {
		// Arrange
		calls := 0
		hc := New("1.0.0-test", zap.NewNop())
		hc.SetCacheTTL(time.Minute)
		hc.Register("counter", NewCustomChecker("counter", func(ctx context.Context) (Status, string, interface{}) {
			calls++
			return StatusHealthy, "", nil
		}))

		// Act
		hc.Check(context.Background())
		hc.Check(context.Background())

		// Assert
		assert.Equal(suite.T(), 1, calls)
	})
}

func (suite *HealthCheckTestSuite) TestHandlers() {
	suite.Run("Handler_Healthy_ShouldReturnOK", func() {
		// Arrange
		hc := suite.newHealthCheck()
		hc.Register("database", staticChecker(StatusHealthy, ""))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)

		// Act
		hc.Handler()(w, req)

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)

		var response Response
		require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(suite.T(), StatusHealthy, response.Status)
	})

	suite.Run("Handler_Unhealthy_ShouldReturnServiceUnavailable", func() {
		// Arrange
		hc := suite.newHealthCheck()
		hc.Register("database", staticChecker(StatusUnhealthy, "down"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)

		// Act
		hc.Handler()(w, req)

		// Assert
		assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
	})

	suite.Run("ReadinessHandler_Degraded_ShouldStillBeReady", func() {
		// Arrange - degraded dependencies do not take the service out of rotation
		hc := suite.newHealthCheck()
		hc.Register("ai", staticChecker(StatusDegraded, "slow"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)

		// Act
		hc.ReadinessHandler()(w, req)

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)
	})

	suite.Run("ReadinessHandler_Unhealthy_ShouldNotBeReady", func() {
		// Arrange
		hc := suite.newHealthCheck()
		hc.Register("database", staticChecker(StatusUnhealthy, "down"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)

		// Act
		hc.ReadinessHandler()(w, req)

		// Assert
		assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)

		var body map[string]interface{}
		require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(suite.T(), "not_ready", body["status"])
	})

	suite.Run("LivenessHandler_ShouldAlwaysReturnOK", func() {
		// Arrange - liveness ignores dependency state entirely
		hc := suite.newHealthCheck()
		hc.Register("database", staticChecker(StatusUnhealthy, "down"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/live", nil)

		// Act
		hc.LivenessHandler()(w, req)

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)
	})
}

func TestHealthCheckTestSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}
