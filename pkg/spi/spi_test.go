package spi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeFactory struct{}

func (fakeFactory) GetContext(ContextRequest) (LoggerContext, error) { return nil, nil }

func TestFactorySlot(t *testing.T) {
	t.Cleanup(func() { SetFactory(nil) })

	assert.Nil(t, Factory())

	SetFactory(fakeFactory{})
	_, ok := Factory().(ContextFactory)
	assert.True(t, ok)

	// The slot accepts arbitrary values; consumers sort out usability.
	SetFactory("not a factory")
	_, ok = Factory().(ContextFactory)
	assert.False(t, ok)

	SetFactory(nil)
	assert.Nil(t, Factory())
}
