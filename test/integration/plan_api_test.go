// Package integration provides API integration tests
//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	planapp "github.com/mealsmith/v1/internal/application/plan"
	"github.com/mealsmith/v1/internal/infrastructure/config"
	"github.com/mealsmith/v1/internal/infrastructure/http/server"
	gormrepo "github.com/mealsmith/v1/internal/infrastructure/persistence/gorm"
	"github.com/mealsmith/v1/pkg/healthcheck"
	"github.com/mealsmith/v1/test/testutils"
)

// PlanAPITestSuite exercises the REST API through the full HTTP stack:
// chi router, middleware, handlers, and the real plan service over a
// seeded in-memory database. AI generation is disabled so every plan
// comes from the deterministic assembler.
type PlanAPITestSuite struct {
	suite.Suite
	handler http.Handler
}

// SetupSuite wires the server once; the seeded corpus is read-only so
// individual tests do not need a fresh database.
func (suite *PlanAPITestSuite) SetupSuite() {
	db := testutils.NewSeededTestDatabase(suite.T())
	logger := zap.NewNop()

	recipes := gormrepo.NewRecipeRepository(db)
	plans := gormrepo.NewPlanRepository(db)

	selector := planapp.NewSelector(recipes, logger)
	assembler := planapp.NewAssembler(selector, logger)
	service := planapp.NewService(assembler, nil, plans, nil, logger, false)

	cfg := &config.Config{
		App: config.AppConfig{
			Environment: "test",
		},
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			RequestTimeout: 30 * time.Second,
		},
	}

	health := healthcheck.New(cfg.App.Version, logger)
	health.Register("database", healthcheck.NewDatabaseChecker(db))

	srv := server.NewServer(cfg, logger, service, recipes, health)
	suite.handler = srv.Router()
}

// postJSON sends a JSON POST request through the router
func (suite *PlanAPITestSuite) postJSON(url string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.handler.ServeHTTP(w, req)
	return w
}

// get sends a GET request through the router
func (suite *PlanAPITestSuite) get(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	suite.handler.ServeHTTP(w, req)
	return w
}

// decodeEnvelope decodes the standard API response envelope
func (suite *PlanAPITestSuite) decodeEnvelope(w *httptest.ResponseRecorder) map[string]interface{} {
	var envelope map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

// TestGeneratePlan tests POST /api/v1/plans
func (suite *PlanAPITestSuite) TestGeneratePlan() {
	suite.Run("ValidProfile_ShouldReturnCreatedPlan", func() {
		// Arrange
		body := map[string]interface{}{
			"age":           30,
			"weight_kg":     80,
			"height_cm":     180,
			"sex":           "male",
			"activity":      "light",
			"goal":          "maintenance",
			"meals_per_day": 3,
			"days":          3,
		}

		// Act
		w := suite.postJSON("/api/v1/plans", body)

		// Assert
		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		envelope := suite.decodeEnvelope(w)
		assert.Equal(suite.T(), true, envelope["success"])

		data := envelope["data"].(map[string]interface{})
		assert.Equal(suite.T(), "fallback", data["source"])

		calc := data["calculation"].(map[string]interface{})
		assert.InDelta(suite.T(), 1853.632, calc["bmr"].(float64), 0.01)
		assert.InDelta(suite.T(), 2548.744, calc["tdee"].(float64), 0.01)
		assert.Equal(suite.T(), float64(2549), calc["daily_target"].(float64))

		p := data["plan"].(map[string]interface{})
		days := p["days"].([]interface{})
		assert.Len(suite.T(), days, 3)
		for _, rawDay := range days {
			day := rawDay.(map[string]interface{})
			meals := day["meals"].([]interface{})
			assert.Len(suite.T(), meals, 3)
		}
	})

	suite.Run("CommaDecimalWeight_ShouldBeAccepted", func() {
		// Arrange - Italian locale clients send "72,5"
		body := map[string]interface{}{
			"age":       "28",
			"weight_kg": "72,5",
			"height_cm": 175,
			"sex":       "female",
			"activity":  "Attività Leggera",
			"goal":      "Mantenimento",
			"days":      2,
		}

		// Act
		w := suite.postJSON("/api/v1/plans", body)

		// Assert
		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		envelope := suite.decodeEnvelope(w)
		data := envelope["data"].(map[string]interface{})
		calc := data["calculation"].(map[string]interface{})

		// BMR reflects the parsed 72.5 kg; a fallback to the 70 kg
		// default would land more than 20 kcal lower.
		assert.InDelta(suite.T(), 1538.9105, calc["bmr"].(float64), 0.01)

		trace := calc["trace"].(map[string]interface{})
		assert.Equal(suite.T(), 1.375, trace["activity_factor"].(float64))
		assert.Equal(suite.T(), 1.0, trace["goal_factor"].(float64))
	})

	suite.Run("UnsafeProfile_ShouldReturnUnprocessableEntity", func() {
		// Arrange - BMR far above the safe ceiling
		body := map[string]interface{}{
			"age":       15,
			"weight_kg": 200,
			"height_cm": 220,
			"sex":       "male",
			"activity":  "very-intense",
			"goal":      "muscle-gain",
		}

		// Act
		w := suite.postJSON("/api/v1/plans", body)

		// Assert
		assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)

		envelope := suite.decodeEnvelope(w)
		assert.Equal(suite.T(), false, envelope["success"])
		assert.Equal(suite.T(), "UNSAFE_CALCULATION", envelope["code"])
	})

	suite.Run("ManualCalorieOverride_ShouldSkipFormula", func() {
		// Arrange
		body := map[string]interface{}{
			"age":            45,
			"weight_kg":      90,
			"height_cm":      178,
			"sex":            "male",
			"meals_per_day":  4,
			"days":           2,
			"daily_calories": 2000,
		}

		// Act
		w := suite.postJSON("/api/v1/plans", body)

		// Assert
		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		envelope := suite.decodeEnvelope(w)
		data := envelope["data"].(map[string]interface{})
		calc := data["calculation"].(map[string]interface{})
		assert.Equal(suite.T(), float64(2000), calc["daily_target"].(float64))
		assert.Equal(suite.T(), float64(0), calc["bmr"].(float64))
	})

	suite.Run("EmptyBody_ShouldUseDefaults", func() {
		// Arrange - every field missing falls back to its documented default
		w := suite.postJSON("/api/v1/plans", map[string]interface{}{})

		// Assert
		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		envelope := suite.decodeEnvelope(w)
		data := envelope["data"].(map[string]interface{})
		p := data["plan"].(map[string]interface{})
		days := p["days"].([]interface{})
		assert.Len(suite.T(), days, 7)
	})

	suite.Run("InvalidJSON_ShouldReturnBadRequest", func() {
		// Arrange
		req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader("not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// Act
		suite.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

		envelope := suite.decodeEnvelope(w)
		assert.Equal(suite.T(), "BAD_REQUEST", envelope["code"])
	})

	suite.Run("NonJSONContentType_ShouldReturnUnsupportedMediaType", func() {
		// Arrange
		req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader("age=30"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		// Act
		suite.handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(suite.T(), http.StatusUnsupportedMediaType, w.Code)
	})

	suite.Run("AllergenExclusion_ShouldNeverAppearInPlan", func() {
		// Arrange
		body := map[string]interface{}{
			"age":       30,
			"weight_kg": 80,
			"height_cm": 180,
			"sex":       "male",
			"days":      5,
			"allergies": []string{"gluten", "nuts"},
		}

		// Act
		w := suite.postJSON("/api/v1/plans", body)

		// Assert
		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		envelope := suite.decodeEnvelope(w)
		data := envelope["data"].(map[string]interface{})
		p := data["plan"].(map[string]interface{})

		excluded := []string{
			"Oat Porridge with Berries",
			"Greek Yogurt Protein Bowl",
			"Banana Peanut Smoothie",
			"Spaghetti al Pomodoro",
			"Zucchini Noodles with Pesto Chicken",
			"Chicken Parmigiana",
			"Mixed Nuts and Dried Fruit",
			"Apple with Peanut Butter",
		}
		for _, rawDay := range p["days"].([]interface{}) {
			day := rawDay.(map[string]interface{})
			for _, rawMeal := range day["meals"].([]interface{}) {
				meal := rawMeal.(map[string]interface{})
				assert.NotContains(suite.T(), excluded, meal["name"].(string))
			}
		}
	})
}

// TestGetPlan tests GET /api/v1/plans/{id}
func (suite *PlanAPITestSuite) TestGetPlan() {
	suite.Run("GeneratedPlan_ShouldRoundTrip", func() {
		// Arrange - generate a plan first, then fetch it by ID
		created := suite.postJSON("/api/v1/plans", map[string]interface{}{
			"age":       30,
			"weight_kg": 80,
			"height_cm": 180,
			"sex":       "male",
			"days":      2,
		})
		require.Equal(suite.T(), http.StatusCreated, created.Code)

		envelope := suite.decodeEnvelope(created)
		data := envelope["data"].(map[string]interface{})
		planID := data["plan"].(map[string]interface{})["id"].(string)
		require.NotEqual(suite.T(), uuid.Nil.String(), planID)

		// Act
		w := suite.get("/api/v1/plans/" + planID)

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)

		fetched := suite.decodeEnvelope(w)
		assert.Equal(suite.T(), true, fetched["success"])

		p := fetched["data"].(map[string]interface{})
		assert.Equal(suite.T(), planID, p["id"])
		assert.Len(suite.T(), p["days"].([]interface{}), 2)
	})

	suite.Run("UnknownID_ShouldReturnNotFound", func() {
		// Act
		w := suite.get("/api/v1/plans/" + uuid.New().String())

		// Assert
		assert.Equal(suite.T(), http.StatusNotFound, w.Code)

		envelope := suite.decodeEnvelope(w)
		assert.Equal(suite.T(), "PLAN_NOT_FOUND", envelope["code"])
	})

	suite.Run("MalformedID_ShouldReturnBadRequest", func() {
		// Act
		w := suite.get("/api/v1/plans/not-a-uuid")

		// Assert
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

		envelope := suite.decodeEnvelope(w)
		assert.Equal(suite.T(), "BAD_REQUEST", envelope["code"])
	})
}

// TestListRecipes tests GET /api/v1/recipes
func (suite *PlanAPITestSuite) TestListRecipes() {
	suite.Run("NoFilters_ShouldReturnFullCorpus", func() {
		// Act
		w := suite.get("/api/v1/recipes")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)

		envelope := suite.decodeEnvelope(w)
		recipes := envelope["data"].([]interface{})
		assert.NotEmpty(suite.T(), recipes)
	})

	suite.Run("CategoryFilter_ShouldReturnOnlyThatCategory", func() {
		// Act
		w := suite.get("/api/v1/recipes?category=breakfast")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)

		envelope := suite.decodeEnvelope(w)
		recipes := envelope["data"].([]interface{})
		assert.NotEmpty(suite.T(), recipes)
		for _, raw := range recipes {
			rec := raw.(map[string]interface{})
			assert.Equal(suite.T(), "breakfast", rec["category"])
		}
	})

	suite.Run("AllergenExclusion_ShouldFilterOutTagged", func() {
		// Act
		w := suite.get("/api/v1/recipes?exclude_allergen=gluten")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)

		envelope := suite.decodeEnvelope(w)
		for _, raw := range envelope["data"].([]interface{}) {
			rec := raw.(map[string]interface{})
			if tags, ok := rec["allergen_tags"].([]interface{}); ok {
				assert.NotContains(suite.T(), tags, "gluten")
			}
		}
	})

	suite.Run("UnknownCategory_ShouldReturnBadRequest", func() {
		// Act
		w := suite.get("/api/v1/recipes?category=midnight-feast")

		// Assert
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	})

	suite.Run("InvalidMaxCalories_ShouldReturnBadRequest", func() {
		// Act
		w := suite.get("/api/v1/recipes?max_calories=lots")

		// Assert
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	})
}

// TestHealthAndHeaders tests the health endpoint and security headers
func (suite *PlanAPITestSuite) TestHealthAndHeaders() {
	suite.Run("HealthCheck_ShouldReportHealthy", func() {
		// Act
		w := suite.get("/health")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)

		envelope := suite.decodeEnvelope(w)
		data := envelope["data"].(map[string]interface{})
		assert.Equal(suite.T(), "healthy", data["status"])
	})

	suite.Run("Readiness_WithLiveDatabase_ShouldBeReady", func() {
		// Act
		w := suite.get("/ready")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, w.Code)

		var body map[string]interface{}
		assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(suite.T(), "ready", body["status"])
	})

	suite.Run("AllResponses_ShouldCarrySecurityHeaders", func() {
		// Act
		w := suite.get("/api/v1/recipes")

		// Assert
		assert.Equal(suite.T(), "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(suite.T(), "DENY", w.Header().Get("X-Frame-Options"))
	})
}

// TestPlanAPITestSuite runs the API integration test suite
func TestPlanAPITestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping API integration tests in short mode")
	}

	suite.Run(t, new(PlanAPITestSuite))
}
