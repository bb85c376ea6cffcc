package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoaderDefaults(t *testing.T) {
	ml, err := NewMockLoader()
	require.NoError(t, err)

	config, err := ml.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com", config.GithubApi.ApiUrl)
	assert.Equal(t, "Sydney", config.Search.Location)
	assert.Equal(t, 100, config.Search.MinFollowers)
	assert.Equal(t, 100, config.Search.PerPage)
	assert.Equal(t, "users.csv", config.Output.UsersFile)
	assert.Equal(t, "repositories.csv", config.Output.ReposFile)
	assert.False(t, config.Kafka.Enabled)
	assert.False(t, config.Storage.MysqlEnabled)
}

func TestNewLoaderKeepsFirstInstance(t *testing.T) {
	first, err := NewMockLoader()
	require.NoError(t, err)

	got, err := NewLoader(first)
	require.NoError(t, err)

	second, err := NewMockLoader()
	require.NoError(t, err)

	again, err := NewLoader(second)
	require.NoError(t, err)
	assert.Same(t, got, again)
}
