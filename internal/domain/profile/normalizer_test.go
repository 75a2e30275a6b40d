package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// NormalizerTestSuite provides a test suite for profile normalization
type NormalizerTestSuite struct {
	suite.Suite
}

// TestNumericParsing tests tolerant numeric field parsing
func (suite *NormalizerTestSuite) TestNumericParsing() {
	suite.Run("PlainNumbers_ShouldPassThrough", func() {
		// Arrange
		raw := RawProfile{Age: 42, WeightKg: 82.5, HeightCm: 178.0}

		// Act
		p, _ := Normalize(raw)

		// Assert
		assert.Equal(suite.T(), 42, p.Age)
		assert.Equal(suite.T(), 82.5, p.WeightKg)
		assert.Equal(suite.T(), 178.0, p.HeightCm)
	})

	suite.Run("CommaDecimalString_ShouldParse", func() {
		// Arrange
		raw := RawProfile{WeightKg: "72,5", HeightCm: "169,0"}

		// Act
		p, _ := Normalize(raw)

		// Assert
		assert.Equal(suite.T(), 72.5, p.WeightKg)
		assert.Equal(suite.T(), 169.0, p.HeightCm)
	})

	suite.Run("NumericString_ShouldParse", func() {
		// Arrange
		raw := RawProfile{Age: "35", Days: "10", MealsPerDay: "5"}

		// Act
		p, _ := Normalize(raw)

		// Assert
		assert.Equal(suite.T(), 35, p.Age)
		assert.Equal(suite.T(), 10, p.Days)
		assert.Equal(suite.T(), 5, p.MealsPerDay)
	})

	suite.Run("UnparseableString_ShouldDefaultWithNote", func() {
		// Arrange
		raw := RawProfile{Age: "not a number"}

		// Act
		p, notes := Normalize(raw)

		// Assert
		assert.Equal(suite.T(), DefaultAge, p.Age)
		assert.NotEmpty(suite.T(), notes)
	})

	suite.Run("MissingEverything_ShouldUseAllDefaults", func() {
		// Act
		p, notes := Normalize(RawProfile{})

		// Assert
		assert.Equal(suite.T(), DefaultAge, p.Age)
		assert.Equal(suite.T(), DefaultWeightKg, p.WeightKg)
		assert.Equal(suite.T(), DefaultHeightCm, p.HeightCm)
		assert.Equal(suite.T(), DefaultDays, p.Days)
		assert.Equal(suite.T(), DefaultMeals, p.MealsPerDay)
		assert.Equal(suite.T(), SexMale, p.Sex)
		assert.Equal(suite.T(), ActivityLight, p.Activity)
		assert.Equal(suite.T(), GoalMaintenance, p.Goal)
		assert.NotEmpty(suite.T(), notes)
	})
}

// TestClamping tests saturation of out-of-range values
func (suite *NormalizerTestSuite) TestClamping() {
	suite.Run("OutOfRangeValues_ShouldSaturate", func() {
		// Arrange
		raw := RawProfile{
			Age:         150,
			WeightKg:    500.0,
			HeightCm:    100.0,
			Days:        30,
			MealsPerDay: 1,
			Sex:         "male",
			Activity:    "light",
			Goal:        "maintenance",
		}

		// Act
		p, notes := Normalize(raw)

		// Assert
		assert.Equal(suite.T(), MaxAge, p.Age)
		assert.Equal(suite.T(), MaxWeight, p.WeightKg)
		assert.Equal(suite.T(), MinHeightCm, p.HeightCm)
		assert.Equal(suite.T(), MaxDays, p.Days)
		assert.Equal(suite.T(), MinMeals, p.MealsPerDay)
		assert.Len(suite.T(), notes, 5)
	})

	suite.Run("NegativeAge_ShouldClampToMinimum", func() {
		// Act
		p, _ := Normalize(RawProfile{Age: -3})

		// Assert
		assert.Equal(suite.T(), MinAge, p.Age)
	})

	suite.Run("InRangeValues_ShouldProduceNoClampNotes", func() {
		// Arrange
		raw := RawProfile{
			Age: 30, WeightKg: 80.0, HeightCm: 180.0,
			Sex: "male", Activity: "light", Goal: "maintenance",
			MealsPerDay: 3, Days: 7,
		}

		// Act
		_, notes := Normalize(raw)

		// Assert
		assert.Empty(suite.T(), notes)
	})
}

// TestEnumAliases tests free-text enum resolution
func (suite *NormalizerTestSuite) TestEnumAliases() {
	suite.Run("ItalianActivityLabel_ShouldResolve", func() {
		// Act
		p, notes := Normalize(RawProfile{Activity: "Attività Leggera"})

		// Assert
		assert.Equal(suite.T(), ActivityLight, p.Activity)
		assert.NotEmpty(suite.T(), notes)
	})

	suite.Run("ItalianGoalLabel_ShouldResolve", func() {
		// Act
		p, _ := Normalize(RawProfile{Goal: "Mantenimento"})

		// Assert
		assert.Equal(suite.T(), GoalMaintenance, p.Goal)
	})

	suite.Run("AthleteLabel_ShouldResolveToVeryIntense", func() {
		// Act
		p, _ := Normalize(RawProfile{Activity: "atleta"})

		// Assert
		assert.Equal(suite.T(), ActivityVeryIntense, p.Activity)
	})

	suite.Run("MixedCaseCanonical_ShouldResolveSilently", func() {
		// Arrange
		var notes []string

		// Act
		level := NormalizeActivity("MODERATE", &notes)

		// Assert
		assert.Equal(suite.T(), ActivityModerate, level)
		assert.Empty(suite.T(), notes)
	})

	suite.Run("UnknownActivity_ShouldDefaultToLight", func() {
		// Arrange
		var notes []string

		// Act
		level := NormalizeActivity("couch surfing", &notes)

		// Assert
		assert.Equal(suite.T(), ActivityLight, level)
		assert.Len(suite.T(), notes, 1)
	})

	suite.Run("UnknownGoal_ShouldDefaultToMaintenance", func() {
		// Arrange
		var notes []string

		// Act
		goal := NormalizeGoal("get shredded somehow", &notes)

		// Assert
		assert.Equal(suite.T(), GoalMaintenance, goal)
		assert.Len(suite.T(), notes, 1)
	})

	suite.Run("FemaleAliases_ShouldResolve", func() {
		for _, alias := range []string{"female", "F", "donna", "Femmina"} {
			p, _ := Normalize(RawProfile{Sex: alias})
			assert.Equal(suite.T(), SexFemale, p.Sex, "alias %q", alias)
		}
	})
}

// TestTokenLists tests allergy and preference normalization
func (suite *NormalizerTestSuite) TestTokenLists() {
	suite.Run("Tokens_ShouldLowercaseTrimAndDedupe", func() {
		// Arrange
		raw := RawProfile{
			Allergies:   []string{" Gluten ", "LACTOSE", "gluten", ""},
			Preferences: []string{"Chicken", "chicken", "rice"},
		}

		// Act
		p, _ := Normalize(raw)

		// Assert
		assert.Equal(suite.T(), []string{"gluten", "lactose"}, p.Allergies)
		assert.Equal(suite.T(), []string{"chicken", "rice"}, p.Preferences)
	})

	suite.Run("EmptyLists_ShouldStayNil", func() {
		// Act
		p, _ := Normalize(RawProfile{})

		// Assert
		assert.Nil(suite.T(), p.Allergies)
		assert.Nil(suite.T(), p.Preferences)
	})
}

func TestNormalizerTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizerTestSuite))
}
