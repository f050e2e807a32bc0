package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core/school"
	"github.com/shulehub/shule/core/user"
	"github.com/shulehub/shule/services/email"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

// resetState drops all rows and recorded identity-provider calls. Tests call
// it first thing.
func resetState() {
	db.Reset()
	idp.Reset()
	emailsvc.SentMessages = emailsvc.SentMessages[:0]
}

// newAuthRequest builds a request carrying token as a Bearer token. With the
// static identity provider, the token IS the uid it authenticates.
func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func createSchool(t *testing.T, name, orgID string) school.School {
	t.Helper()
	sch, err := schoolRepo.CreateSchool(context.Background(), school.School{Name: name, OrgID: orgID})
	require.NoError(t, err)
	return sch
}

func createUser(t *testing.T, uid, first, last, email, role, schoolID string, active bool, profile user.Profile) user.User {
	t.Helper()
	usr, err := usrRepo.CreateUser(context.Background(), user.User{
		UID:       uid,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Role:      role,
		SchoolID:  schoolID,
		IsActive:  active,
		Profile:   profile,
	})
	require.NoError(t, err)
	return usr
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// decodeUser unwraps the `{"user": ...}` envelope.
func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) userPayload {
	t.Helper()
	var resp struct {
		User userPayload `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User
}

// userPayload defers profile decoding; user.Profile is an interface.
type userPayload struct {
	user.User
	Profile json.RawMessage `json:"profile"`
}
