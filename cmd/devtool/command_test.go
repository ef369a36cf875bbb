package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&MigrateCommand{})
	r.Register(&CheckCatalogCommand{})
	r.Register(&CheckDBCommand{})

	cmd, ok := r.Get("migrate")
	require.True(t, ok)
	assert.Equal(t, "migrate", cmd.Name())

	_, ok = r.Get("deploy")
	assert.False(t, ok)

	names := make([]string, 0, 3)
	for _, c := range r.List() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"check-catalog", "check-db", "migrate"}, names)
}

func TestCheckCatalogCommand(t *testing.T) {
	t.Chdir("../..")

	err := (&CheckCatalogCommand{}).Run(context.Background(), nil)
	assert.NoError(t, err)

	err = (&CheckCatalogCommand{}).Run(context.Background(), []string{"missing.json"})
	assert.Error(t, err)
}

func TestMigrateCommand_ArgumentErrors(t *testing.T) {
	cmd := &MigrateCommand{}
	assert.Error(t, cmd.Run(context.Background(), nil))
	assert.Error(t, cmd.Run(context.Background(), []string{"create"}))
}

func TestResetDBCommand_RequiresConfirmation(t *testing.T) {
	err := (&ResetDBCommand{}).Run(context.Background(), []string{"no"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), confirmYes)
}
