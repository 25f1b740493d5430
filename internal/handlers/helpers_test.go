package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRespondErrorStatus(t *testing.T) {
	logger, _ := test.NewNullLogger()

	verr := apperrors.NewValidationError()
	verr.Add("name", "is required")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantData   map[string]any
	}{
		{name: "validation", err: verr, wantStatus: fiber.StatusUnprocessableEntity},
		{name: "not found", err: apperrors.NotFound("genres", "x"), wantStatus: fiber.StatusNotFound},
		{
			name:       "constraint violation",
			err:        fmt.Errorf("sync: %w", &apperrors.ConstraintViolationError{Table: "category_genre", Detail: "1 of 1 categories do not exist"}),
			wantStatus: fiber.StatusConflict,
			wantData:   map[string]any{"table": "category_genre", "detail": "1 of 1 categories do not exist"},
		},
		{name: "unexpected", err: errors.New("boom"), wantStatus: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, logger, tt.err, "genre")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body struct {
				Data map[string]any `json:"data"`
			}
			raw, _ := io.ReadAll(resp.Body)
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatalf("decode %s: %v", raw, err)
			}
			for key, want := range tt.wantData {
				if body.Data[key] != want {
					t.Errorf("data[%s] = %v, want %v", key, body.Data[key], want)
				}
			}
		})
	}
}

func TestListParamsDirection(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{query: "/?sort=name", want: ""},
		{query: "/?sort=name&dir=asc", want: "asc"},
		{query: "/?sort=name&dir=desc", want: "desc"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got repository.ListParams
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = listParams(c)
				return c.SendStatus(fiber.StatusNoContent)
			})

			if _, err := app.Test(httptest.NewRequest("GET", tt.query, nil), -1); err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if got.Dir != tt.want || got.Sort != "name" {
				t.Errorf("listParams() = %+v, want sort name dir %q", got, tt.want)
			}
		})
	}
}
