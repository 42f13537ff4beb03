package repositories_test

import (
	"testing"

	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserRepo(t *testing.T) *repositories.GORMUserRepository {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))
	return repositories.NewGORMUserRepository(db)
}

func TestGORMUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := setupUserRepo(t)

	first := &models.User{Email: "dup@example.com", PasswordHash: "hash", Name: "First"}
	assert.NoError(t, repo.Create(first))

	// Same email hits the unique index and comes back as a conflict the
	// service layer can distinguish from a storage failure.
	second := &models.User{Email: "dup@example.com", PasswordHash: "hash", Name: "Second"}
	err := repo.Create(second)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)

	// A different email is unaffected.
	third := &models.User{Email: "other@example.com", PasswordHash: "hash", Name: "Third"}
	assert.NoError(t, repo.Create(third))

	stored, err := repo.GetByEmail("dup@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "First", stored.Name)
}
