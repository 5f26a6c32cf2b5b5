package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "consentintel/pkg/domain-errors"
)

type sampleRequest struct {
	AppID string `json:"appId" validate:"notblank,max=8"`
	Type  string `json:"type" validate:"omitempty,max=4"`
}

func TestValidate(t *testing.T) {
	t.Run("accepts a well formed request", func(t *testing.T) {
		assert.NoError(t, Validate(&sampleRequest{AppID: "app_1"}))
	})

	t.Run("reports missing field by json name", func(t *testing.T) {
		err := Validate(&sampleRequest{AppID: "   "})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "appId is required", err.Error())
	})

	t.Run("reports max length", func(t *testing.T) {
		err := Validate(&sampleRequest{AppID: "app_1", Type: "dormant_access"})
		require.Error(t, err)
		assert.Equal(t, "type must be at most 4 characters", err.Error())
	})
}
