package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// AppErrorTestSuite tests structured error construction and HTTP mapping
type AppErrorTestSuite struct {
	suite.Suite
}

func (suite *AppErrorTestSuite) TestStatusCodeMapping() {
	cases := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"BadRequest", NewBadRequestError("bad input"), http.StatusBadRequest},
		{"Validation", NewValidationError("age is required"), http.StatusBadRequest},
		{"UnsafeCalculation", NewUnsafeCalculationError(2800, 4830, 4830), http.StatusUnprocessableEntity},
		{"NotFound", NewNotFoundError("recipe"), http.StatusNotFound},
		{"PlanNotFound", NewPlanNotFoundError("abc"), http.StatusNotFound},
		{"RecipeNotFound", NewRecipeNotFoundError("def"), http.StatusNotFound},
		{"Internal", NewInternalError(""), http.StatusInternalServerError},
		{"Database", NewDatabaseError("query recipes", errors.New("locked")), http.StatusInternalServerError},
		{"ExternalService", NewExternalServiceError("ollama", errors.New("refused")), http.StatusInternalServerError},
		{"NoRecipesAvailable", NewNoRecipesAvailableError("dinner"), http.StatusInternalServerError},
		{"EmptyPlan", NewEmptyPlanError(), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.status, tc.err.StatusCode())
		})
	}
}

func (suite *AppErrorTestSuite) TestErrorString() {
	suite.Run("WithDetails_ShouldIncludeBoth", func() {
		// Arrange
		err := NewAppError(CodeBadRequest, "Bad request", "missing field")

		// Assert
		assert.Equal(suite.T(), "BAD_REQUEST: Bad request (missing field)", err.Error())
	})

	suite.Run("WithoutDetails_ShouldOmitParentheses", func() {
		// Arrange
		err := NewBadRequestError("Bad request")

		// Assert
		assert.Equal(suite.T(), "BAD_REQUEST: Bad request", err.Error())
	})
}

func (suite *AppErrorTestSuite) TestCauseChain() {
	suite.Run("WithCause_ShouldUnwrap", func() {
		// Arrange
		cause := errors.New("connection reset")
		err := NewExternalServiceError("openai", cause)

		// Assert
		assert.Same(suite.T(), cause, err.Unwrap())
		assert.True(suite.T(), errors.Is(err, cause))
	})

	suite.Run("NoCause_ShouldUnwrapNil", func() {
		// Arrange
		err := NewEmptyPlanError()

		// Assert
		assert.Nil(suite.T(), err.Unwrap())
	})
}

func (suite *AppErrorTestSuite) TestMetadata() {
	suite.Run("UnsafeCalculation_ShouldCarryNumbers", func() {
		// Arrange
		err := NewUnsafeCalculationError(2800.5, 4830.8, 4831)

		// Assert
		assert.Equal(suite.T(), 2800.5, err.Metadata["bmr"])
		assert.Equal(suite.T(), 4830.8, err.Metadata["tdee"])
		assert.Equal(suite.T(), 4831, err.Metadata["daily_target"])
	})

	suite.Run("WithMetadata_ShouldAccumulate", func() {
		// Arrange
		err := NewBadRequestError("bad").
			WithMetadata("field", "age").
			WithMetadata("value", -3)

		// Assert
		assert.Equal(suite.T(), "age", err.Metadata["field"])
		assert.Equal(suite.T(), -3, err.Metadata["value"])
	})
}

func (suite *AppErrorTestSuite) TestWrap() {
	suite.Run("NilError_ShouldReturnNil", func() {
		assert.Nil(suite.T(), Wrap(nil, "ignored"))
	})

	suite.Run("AppError_ShouldPassThrough", func() {
		// Arrange
		original := NewPlanNotFoundError("xyz")

		// Act
		wrapped := Wrap(original, "fetch plan")

		// Assert
		assert.Same(suite.T(), original, wrapped)
	})

	suite.Run("PlainError_ShouldBecomeInternal", func() {
		// Arrange
		cause := errors.New("boom")

		// Act
		wrapped := Wrap(cause, "fetch plan")

		// Assert
		assert.Equal(suite.T(), CodeInternal, wrapped.Code)
		assert.Equal(suite.T(), "fetch plan", wrapped.Message)
		assert.Same(suite.T(), cause, wrapped.Cause)
	})
}

func (suite *AppErrorTestSuite) TestCodeInspection() {
	suite.Run("Is_MatchingCode_ShouldBeTrue", func() {
		assert.True(suite.T(), Is(NewEmptyPlanError(), CodeEmptyPlan))
	})

	suite.Run("Is_DifferentCode_ShouldBeFalse", func() {
		assert.False(suite.T(), Is(NewEmptyPlanError(), CodePlanNotFound))
	})

	suite.Run("Is_PlainError_ShouldBeFalse", func() {
		assert.False(suite.T(), Is(errors.New("boom"), CodeInternal))
	})

	suite.Run("GetCode_AppError_ShouldReturnCode", func() {
		assert.Equal(suite.T(), CodeUnsafeCalculation, GetCode(NewUnsafeCalculationError(0, 0, 0)))
	})

	suite.Run("GetCode_PlainError_ShouldDefaultToInternal", func() {
		assert.Equal(suite.T(), CodeInternal, GetCode(errors.New("boom")))
	})
}

func (suite *AppErrorTestSuite) TestValidationErrors() {
	suite.Run("Empty_ShouldUseGenericMessage", func() {
		assert.Equal(suite.T(), "validation failed", ValidationErrors{}.Error())
	})

	suite.Run("Single_ShouldUseItsMessage", func() {
		// Arrange
		errs := ValidationErrors{{Field: "age", Message: "age must be a number"}}

		// Assert
		assert.Equal(suite.T(), "age must be a number", errs.Error())
	})

	suite.Run("Multiple_ShouldJoinWithSemicolons", func() {
		// Arrange
		errs := ValidationErrors{
			{Field: "age", Message: "age must be a number"},
			{Field: "sex", Message: "sex is unknown"},
		}

		// Assert
		assert.Equal(suite.T(), "age must be a number; sex is unknown", errs.Error())
	})

	suite.Run("NewValidationErrors_ShouldBuildAppError", func() {
		// Arrange
		errs := []ValidationError{{Field: "age", Tag: "min", Message: "too small"}}

		// Act
		err := NewValidationErrors(errs)

		// Assert
		assert.Equal(suite.T(), CodeValidationFailed, err.Code)
		assert.Equal(suite.T(), "too small", err.Details)
		assert.NotNil(suite.T(), err.Metadata["validation_errors"])
	})
}

func TestAppErrorTestSuite(t *testing.T) {
	suite.Run(t, new(AppErrorTestSuite))
}
