package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Age   int    `validate:"gte=0,lte=150"`
}

func TestValidate_Success(t *testing.T) {
	s := signupForm{Name: "Jo", Email: "jo@example.com", Age: 30}
	assert.NoError(t, Validate(s))
}

func TestValidate_MissingRequired(t *testing.T) {
	s := signupForm{Email: "jo@example.com", Age: 30}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Name"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	s := signupForm{Name: "Jo", Email: "not-an-email", Age: 30}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_OutOfRange(t *testing.T) {
	s := signupForm{Name: "Jo", Email: "jo@example.com", Age: 200}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Age"], "150")
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(signupForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "Email")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(signupForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Name'")
	assert.Contains(t, err.Error(), "is required")
}

type skuForm struct {
	SKU  string `validate:"min=3"`
	Slug string `validate:"max=5"`
}

func TestValidate_MinMax(t *testing.T) {
	err := Validate(skuForm{SKU: "ab", Slug: "toolongslug"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields["SKU"], "at least 3")
	assert.Contains(t, fields["Slug"], "at most 5")
}

type roleForm struct {
	Role string `validate:"oneof=USER ADMIN"`
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(roleForm{Role: "WIZARD"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Role"], "one of")
}

func TestValidate_OneOf_Valid(t *testing.T) {
	assert.NoError(t, Validate(roleForm{Role: "ADMIN"}))
}

func TestDecodeAndValidate_Success(t *testing.T) {
	body := `{"Name":"Jo","Email":"jo@example.com","Age":25}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var s signupForm
	err := DecodeAndValidate(req, &s)

	require.NoError(t, err)
	assert.Equal(t, "Jo", s.Name)
	assert.Equal(t, 25, s.Age)
}

func TestDecodeAndValidate_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{invalid"))

	var s signupForm
	err := DecodeAndValidate(req, &s)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_ValidationFails(t *testing.T) {
	body := `{"Name":"","Email":"bad","Age":25}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var s signupForm
	err := DecodeAndValidate(req, &s)

	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}
