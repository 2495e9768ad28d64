package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	msg := "something went wrong"
	resp := Error(msg)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, msg, resp.Error)
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Email    string  `validate:"required,email"`
		Password string  `validate:"min=3"`
		Currency string  `validate:"len=3,alpha"`
		Cycle    string  `validate:"oneof=monthly yearly"`
		Price    float64 `validate:"gte=0"`
	}

	v := validator.New()
	ts := TestStruct{
		Email:    "not-an-email",
		Password: "pw",
		Currency: "US",
		Cycle:    "weekly",
		Price:    -1,
	}

	err := v.Struct(ts)
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Password must be at least 3 characters long")
	assert.Contains(t, resp.Error, "field Currency must be exactly 3 characters long")
	assert.Contains(t, resp.Error, "field Cycle must be one of: monthly yearly")
	assert.Contains(t, resp.Error, "field Price must be greater than or equal to 0")
}

func TestValidationErrorRequired(t *testing.T) {
	type TestStruct struct {
		Name string `validate:"required"`
	}

	v := validator.New()
	ts := TestStruct{}

	err := v.Struct(ts)
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "field Name is a required field", resp.Error)
}

func TestValidationErrorUnknownTag(t *testing.T) {
	type TestStruct struct {
		URL string `validate:"url"`
	}

	err := validator.New().Struct(TestStruct{URL: "not a url"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, "field URL is not valid", resp.Error)
}
