package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type createPayload struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func TestValidateStructPasses(t *testing.T) {
	require.NoError(t, ValidateStruct(&createPayload{Name: "bread"}))
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&createPayload{})
	require.Error(t, err)

	ve, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, ve, 1)
	require.Equal(t, "name", ve[0].Field)
	require.Equal(t, "required", ve[0].Tag)
}

func TestValidateStructParamsSurface(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}

	err := ValidateStruct(&createPayload{Name: string(long)})
	require.Error(t, err)

	ve, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Equal(t, "max", ve[0].Tag)
	require.Equal(t, "255", ve[0].Param)
	require.Contains(t, ve.Error(), "name failed on max=255")
}
