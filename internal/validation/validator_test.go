package validation_test

import (
	"testing"

	"catalog-backend/internal/validation"

	"github.com/go-playground/validator/v10"
)

type videoLike struct {
	Title          string   `json:"title" validate:"required,max=10"`
	Duration       *int     `json:"duration" validate:"required,min=0"`
	Classification string   `json:"classification" validate:"required,classification"`
	ReleaseAt      string   `json:"release_at" validate:"required,datetime=2006-01-02"`
	Genres         []string `json:"genres" validate:"required,min=1,dive,uuid"`
	Role           int      `json:"role" validate:"omitempty,cast_role"`
}

func intPtr(v int) *int { return &v }

func TestStructPasses(t *testing.T) {
	v := validation.New()

	input := videoLike{
		Title:          "ok",
		Duration:       intPtr(0),
		Classification: "14",
		ReleaseAt:      "2020-02-29",
		Genres:         []string{"7c9e6679-7425-40de-944b-e07fc1f90ae7"},
		Role:           3,
	}
	if verr := v.Struct(input); verr != nil {
		t.Fatalf("Struct() = %v, want nil", verr)
	}
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	v := validation.New()

	input := videoLike{
		Title:          "this title is too long",
		Duration:       intPtr(-1),
		Classification: "21",
		ReleaseAt:      "29/02/2020",
		Genres:         []string{"7c9e6679-7425-40de-944b-e07fc1f90ae7", "nope"},
		Role:           9,
	}
	verr := v.Struct(input)
	if verr == nil {
		t.Fatal("Struct() = nil, want errors")
	}

	for _, field := range []string{"title", "duration", "classification", "release_at", "genres", "role"} {
		if !verr.Has(field) {
			t.Errorf("missing error for %q in %v", field, verr.Fields)
		}
	}
}

func TestStructRequired(t *testing.T) {
	v := validation.New()

	verr := v.Struct(videoLike{})
	if verr == nil {
		t.Fatal("Struct() = nil, want errors")
	}
	if got := verr.Fields["duration"]; len(got) != 1 || got[0] != "is required" {
		t.Errorf("duration errors = %v, want [is required]", got)
	}
	if !verr.Has("genres") {
		t.Error("empty genres should be rejected")
	}
}

func TestRegisterReportsInvalidRule(t *testing.T) {
	v := validation.New()

	err := v.Register("", func(fl validator.FieldLevel) bool { return true })
	if err == nil {
		t.Fatal("Register() with empty tag error = nil, want error")
	}

	if err := v.Register("even", func(fl validator.FieldLevel) bool { return fl.Field().Int()%2 == 0 }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	type counter struct {
		N int `json:"n" validate:"even"`
	}
	if verr := v.Struct(counter{N: 3}); verr == nil || !verr.Has("n") {
		t.Errorf("Struct(odd) = %v, want error on n", verr)
	}
	if verr := v.Struct(counter{N: 4}); verr != nil {
		t.Errorf("Struct(even) = %v, want nil", verr)
	}
}
