package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindBody(t *testing.T, body string, req any) (bool, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return bindJSON(c, req), w
}

func TestBindJSONReportsFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		req  func() any
		want string
	}{
		{
			name: "customer email",
			body: `{"first_name":"Meera","email":"not-an-email","password":"secret12"}`,
			req:  func() any { return &CustomerSignupRequest{} },
			want: errBadEmail.Code,
		},
		{
			name: "customer optional phone",
			body: `{"first_name":"Meera","email":"m@example.com","password":"secret12","phone_number":"98765"}`,
			req:  func() any { return &CustomerSignupRequest{} },
			want: errBadPhone.Code,
		},
		{
			name: "chef email",
			body: `{"business_name":"Ghar","email":"ghar@","password":"secret12"}`,
			req:  func() any { return &ChefSignupRequest{} },
			want: errBadEmail.Code,
		},
		{
			name: "courier phone with letters",
			body: `{"first_name":"Ravi","last_name":"K","phone_number":"98765abcde","password":"secret12"}`,
			req:  func() any { return &CourierSignupRequest{} },
			want: errBadPhone.Code,
		},
		{
			name: "courier signin phone",
			body: `{"phone_number":"+919876543210","password":"secret12"}`,
			req:  func() any { return &PhoneLoginRequest{} },
			want: errBadPhone.Code,
		},
		{
			name: "admin courier email",
			body: `{"first_name":"Sunil","phone_number":"9000000001","email":"sunil"}`,
			req:  func() any { return &CreateCourierRequest{} },
			want: errBadEmail.Code,
		},
		{
			name: "address pincode",
			body: `{"street":"MG Road","city":"Mumbai","pincode":"40001a"}`,
			req:  func() any { return &AddressRequest{} },
			want: errBadPincode.Code,
		},
		{
			name: "admin service area pincode",
			body: `{"chef_id":1,"pincode":"4000011","delivery_fee":20}`,
			req:  func() any { return &AdminServiceAreaRequest{} },
			want: errBadPincode.Code,
		},
		{
			name: "missing field wins over format",
			body: `{"email":"bad","password":"secret12"}`,
			req:  func() any { return &CustomerSignupRequest{} },
			want: errInvalidRequest.Code,
		},
		{
			name: "malformed json",
			body: `{"email":`,
			req:  func() any { return &CustomerSignupRequest{} },
			want: errInvalidRequest.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, w := bindBody(t, tt.body, tt.req())
			require.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var env struct {
				ErrorCode string `json:"error_code"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.want, env.ErrorCode)
		})
	}
}

func TestBindJSONAcceptsValidFormats(t *testing.T) {
	var signup CustomerSignupRequest
	ok, _ := bindBody(t, `{"first_name":"Meera","email":"Meera@Example.com","password":"secret12","phone_number":"9123456780"}`, &signup)
	require.True(t, ok)
	assert.Equal(t, "9123456780", signup.Phone)

	var noPhone CustomerSignupRequest
	ok, _ = bindBody(t, `{"first_name":"Meera","email":"m@example.com","password":"secret12"}`, &noPhone)
	assert.True(t, ok)

	var update UpdateCustomerRequest
	ok, _ = bindBody(t, `{"first_name":"Meera"}`, &update)
	assert.True(t, ok)
	assert.Nil(t, update.Phone)

	var area ServiceAreaRequest
	ok, _ = bindBody(t, `{"pincode":"400001","delivery_fee":0}`, &area)
	assert.True(t, ok)
}
