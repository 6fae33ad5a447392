package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkarsten/waveline/models"
)

func TestCreateUserHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.CreateUser(context.Background(), "alice", "Alice@Example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEqual(t, "s3cret-pass", user.PasswordHash)

	// The hash must never leak through serialization.
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "s3cret-pass")
	require.NotContains(t, string(raw), user.PasswordHash)
	require.False(t, strings.Contains(string(raw), "password"))
}

func TestCreateUserValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"missing username", "", "a@example.com", "password"},
		{"missing email", "alice", "", "password"},
		{"missing password", "alice", "a@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tc.username, tc.email, tc.password)
			require.Error(t, err)
			require.Equal(t, KindValidation, errKind(t, err))
		})
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.CreateUser(context.Background(), "alice", "alice@example.com", "password")
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), "alice", "other@example.com", "password")
	require.Error(t, err)
	require.Equal(t, KindConflict, errKind(t, err))

	_, err = svc.CreateUser(context.Background(), "bob", "alice@example.com", "password")
	require.Error(t, err)
	require.Equal(t, KindConflict, errKind(t, err))
}

// A registration racing past the existence check must still surface as a
// conflict, not an internal error, when the unique index rejects the insert.
func TestCreateUserDuplicateRace(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	var raced bool
	err := db.Callback().Create().Before("gorm:create").Register("rival_signup", func(tx *gorm.DB) {
		if raced {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.User); !ok {
			return
		}
		raced = true
		// Insert through the pool, not tx, so the rival commits on its own.
		rival := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
		require.NoError(t, db.Session(&gorm.Session{NewDB: true}).Create(&rival).Error)
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), "alice", "alice@example.com", "password")
	require.Error(t, err)
	require.Equal(t, KindConflict, errKind(t, err))
	require.True(t, raced)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	created, err := svc.CreateUser(context.Background(), "alice", "alice@example.com", "password")
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "ALICE@example.com", "password")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)

	// Wrong password and unknown account must be indistinguishable.
	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	require.Equal(t, KindAuthentication, errKind(t, err))
	wrongMsg := err.Error()

	_, err = svc.Login(context.Background(), "nobody@example.com", "password")
	require.Error(t, err)
	require.Equal(t, KindAuthentication, errKind(t, err))
	require.Equal(t, wrongMsg, err.Error())
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.GetUser(context.Background(), 404)
	require.Error(t, err)
	require.Equal(t, KindNotFound, errKind(t, err))
}
