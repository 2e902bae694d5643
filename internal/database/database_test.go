package database

import (
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectTestAppliesSchema(t *testing.T) {
	db, err := ConnectTest()
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Post{}))

	user := &models.User{Email: "a@x.com", Password: "hash", Role: models.RoleAdmin}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Post{Title: "T", AuthorID: user.ID}).Error)
}

func TestConnectTestIsolatesDatabases(t *testing.T) {
	db1, err := ConnectTest()
	require.NoError(t, err)
	db2, err := ConnectTest()
	require.NoError(t, err)

	require.NoError(t, db1.Create(&models.User{Email: "a@x.com", Password: "hash", Role: models.RoleUser}).Error)

	var count int64
	require.NoError(t, db2.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count, "each ConnectTest call gets a fresh database")
}

func TestUniqueEmailIndex(t *testing.T) {
	db, err := ConnectTest()
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.User{Email: "dup@x.com", Password: "h", Role: models.RoleUser}).Error)
	err = db.Create(&models.User{Email: "dup@x.com", Password: "h", Role: models.RoleUser}).Error
	assert.Error(t, err, "email uniqueness is enforced at the schema level")
}
