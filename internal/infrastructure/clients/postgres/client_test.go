package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDB_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing()
	mock.ExpectClose()

	client := NewFromDB(db)
	assert.NoError(t, client.Ping(context.Background()))
	assert.Same(t, db, client.DB())
	assert.NoError(t, client.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
