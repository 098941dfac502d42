package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_OrdenadasYNoVacias(t *testing.T) {
	list, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, list)

	assert.Equal(t, 1, list[0].Version)
	assert.Equal(t, "sigep", list[0].Name)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Version, list[i].Version)
	}
	for _, m := range list {
		assert.NotEmpty(t, m.SQL, "migración %d vacía", m.Version)
	}
}

func TestMigrations_EsquemaBase(t *testing.T) {
	list, err := Migrations()
	require.NoError(t, err)

	sql := list[0].SQL
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS usuarios")
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS pedidos")
	assert.Contains(t, sql, "ON DELETE CASCADE")
	assert.Contains(t, sql, "PRIMARY KEY (pedido_id, area)")
}
