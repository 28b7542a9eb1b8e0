package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_RequiresSearchService(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestNewServer_SearchOnly(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}})
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewServer_WithIndexService(t *testing.T) {
	server, err := NewServer(&Ports{
		Search: &mockSearchService{},
		Index:  &mockIndexService{},
	})
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestPortsValidate(t *testing.T) {
	assert.Error(t, (&Ports{}).Validate())
	assert.NoError(t, (&Ports{Search: &mockSearchService{}}).Validate())
}
