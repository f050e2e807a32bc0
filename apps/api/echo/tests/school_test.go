package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core/school"
)

func Test_schoolApi_create(t *testing.T) {
	resetState()

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		}
		req, rec := newRequest(http.MethodPost, "/api/schools", marchallObj(t, school.NewSchool{Name: "X"}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("creates a school", func(t *testing.T) {
		body := marchallObj(t, school.NewSchool{Name: "Lumumba High", OrgID: "org_1"})
		req, rec := newAuthRequest(http.MethodPost, "/api/schools", "uid-admin", body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			School school.School `json:"school"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.School.ID)
		assert.Equal(t, "Lumumba High", resp.School.Name)
		assert.Equal(t, "org_1", resp.School.OrgID)
	})

	t.Run("name is required", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{
				"error":   "invalid input",
				"details": echo.Map{"name": "this field is required"},
			}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/api/schools", "uid-admin", marchallObj(t, echo.Map{}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_schoolApi_retrieve(t *testing.T) {
	resetState()
	sch := createSchool(t, "Lumumba High", "org_1")

	tests := []httpTest{
		{
			name: "known school", path: "/api/schools/" + sch.ID, token: "uid-any",
			wantCode: http.StatusOK, wantData: marchallObj(t, echo.Map{"school": sch}),
		},
		{
			name: "unknown school", path: "/api/schools/nope", token: "uid-any",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "school not found"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
