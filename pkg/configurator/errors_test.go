package configurator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("disk on fire")

	creation := NewContextCreationError(cause)
	assert.True(t, IsContextCreation(creation))
	assert.False(t, IsInvalidLocation(creation))
	assert.ErrorIs(t, creation, cause)
	assert.Contains(t, creation.Error(), "disk on fire")

	location := NewInvalidLocationError("::bad::", cause)
	assert.True(t, IsInvalidLocation(location))
	assert.False(t, IsContextCreation(location))
	assert.ErrorIs(t, location, cause)
	assert.Contains(t, location.Error(), `"::bad::"`)

	var locErr *InvalidLocationError
	require.ErrorAs(t, location, &locErr)
	assert.Equal(t, "::bad::", locErr.Location)
}

func TestErrorTaxonomySurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while initializing: %w", NewContextCreationError(errors.New("boom")))

	assert.True(t, IsContextCreation(wrapped))
	assert.ErrorIs(t, wrapped, &ContextCreationError{})
}

func TestIncompatibleFactoryError(t *testing.T) {
	none := NewIncompatibleFactoryError(nil)
	assert.True(t, IsIncompatibleFactory(none))
	assert.Equal(t, "no context factory capability registered", none.Error())

	typed := NewIncompatibleFactoryError(42)
	assert.Contains(t, typed.Error(), "int")
	assert.ErrorIs(t, typed, &IncompatibleFactoryError{})
}
