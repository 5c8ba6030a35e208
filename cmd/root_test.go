package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "grant-admin"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup(migrateFlag))
}

func TestGrantAdmin_RequiresEmail(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"grant-admin"})

	err := root.Execute()
	assert.EqualError(t, err, "--email is required")
}
