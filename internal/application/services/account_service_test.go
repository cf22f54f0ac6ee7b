package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/domain/entities"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

func TestFormInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want services.FormInt
	}{
		{"number", `20`, 20},
		{"numeric string", `"20"`, 20},
		{"padded string", `" 21 "`, 21},
		{"word", `"twenty"`, 0},
		{"fraction", `20.5`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n services.FormInt
			require.NoError(t, json.Unmarshal([]byte(tt.json), &n))
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestAccountService_RegisterFromForm(t *testing.T) {
	ctx := context.Background()
	form := `{"fullName":"A B","gender":"female","age":%s,"email":"a@gmail.com","phone":"9876543210","password":"ab12cd","role":"patient"}`

	t.Run("age sent as text is accepted", func(t *testing.T) {
		var in services.RegisterInput
		require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(form, `"20"`)), &in))

		user, err := newPortal().accounts.Register(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, 20, user.Age)
	})

	t.Run("non numeric age fails validation", func(t *testing.T) {
		var in services.RegisterInput
		require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(form, `"old"`)), &in))

		_, err := newPortal().accounts.Register(ctx, in)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "age must be a positive number")
	})
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully registers an active account", func(t *testing.T) {
		// Arrange
		p := newPortal()

		// Act
		user, err := p.accounts.Register(ctx, validRegistration())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, p.clock.Now().UnixMilli(), user.ID)
		assert.Equal(t, entities.UserStatusActive, user.Status)
		assert.Equal(t, "A B", user.FullName)

		users, err := p.accounts.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entities.User{*user}, users)
	})

	t.Run("reports the first violated rule", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(in *services.RegisterInput)
			message string
		}{
			{"blank name", func(in *services.RegisterInput) { in.FullName = "   " }, "full name is required"},
			{"blank name before bad age", func(in *services.RegisterInput) { in.FullName = ""; in.Age = 0 }, "full name is required"},
			{"missing gender", func(in *services.RegisterInput) { in.Gender = "" }, "gender is required"},
			{"zero age", func(in *services.RegisterInput) { in.Age = 0 }, "age must be a positive number"},
			{"negative age", func(in *services.RegisterInput) { in.Age = -3 }, "age must be a positive number"},
			{"non gmail", func(in *services.RegisterInput) { in.Email = "a@yahoo.com" }, "email must be a @gmail.com address"},
			{"short phone", func(in *services.RegisterInput) { in.Phone = "987654321" }, "phone number must be exactly 10 digits"},
			{"phone with letters", func(in *services.RegisterInput) { in.Phone = "98765x3210" }, "phone number must be exactly 10 digits"},
			{"short password", func(in *services.RegisterInput) { in.Password = "ab12" }, "password must be at least 6 letters and digits with at least one of each"},
			{"password without digit", func(in *services.RegisterInput) { in.Password = "abcdef" }, "password must be at least 6 letters and digits with at least one of each"},
			{"password without letter", func(in *services.RegisterInput) { in.Password = "123456" }, "password must be at least 6 letters and digits with at least one of each"},
			{"password with symbol", func(in *services.RegisterInput) { in.Password = "ab12cd!" }, "password must be at least 6 letters and digits with at least one of each"},
			{"unknown role", func(in *services.RegisterInput) { in.Role = "nurse" }, "role must be one of admin, doctor, patient, pharmacist"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p := newPortal()
				in := validRegistration()
				tt.mutate(&in)

				user, err := p.accounts.Register(ctx, in)

				assert.Nil(t, user)
				require.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), err)
				appErr, _ := apperrors.As(err)
				assert.Equal(t, tt.message, appErr.Message)
			})
		}
	})

	t.Run("accepts a long mixed-case password", func(t *testing.T) {
		p := newPortal()
		in := validRegistration()
		in.Password = "SecretPass2026"

		_, err := p.accounts.Register(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("rejects a duplicate email and role", func(t *testing.T) {
		p := newPortal()
		p.mustRegister(validRegistration())

		again := validRegistration()
		again.FullName = "Someone Else"
		again.Password = "zz99yy"
		_, err := p.accounts.Register(ctx, again)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("same email may hold a second role", func(t *testing.T) {
		p := newPortal()
		p.mustRegister(validRegistration())

		doctor := validRegistration()
		doctor.Role = entities.RoleDoctor
		_, err := p.accounts.Register(ctx, doctor)

		assert.NoError(t, err)
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("Load", ctx).Return(nil, apperrors.NewInternalError("failed to load medicare.users", errors.New("down")))
		service := services.NewAccountService(repo, services.NewIDGenerator(newFakeClock()))

		_, err := service.Register(ctx, validRegistration())

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()
	p := newPortal()
	registered := p.mustRegister(validRegistration())

	t.Run("returns the matching account", func(t *testing.T) {
		user, err := p.accounts.Authenticate(ctx, "a@gmail.com", entities.RolePatient, "ab12cd")

		require.NoError(t, err)
		assert.Equal(t, registered, *user)
	})

	t.Run("mismatches are indistinguishable", func(t *testing.T) {
		cases := []struct {
			email    string
			role     entities.Role
			password string
		}{
			{"nobody@gmail.com", entities.RolePatient, "ab12cd"},
			{"a@gmail.com", entities.RoleDoctor, "ab12cd"},
			{"a@gmail.com", entities.RolePatient, "ab12ce"},
			{"A@gmail.com", entities.RolePatient, "ab12cd"},
		}

		for _, c := range cases {
			_, err := p.accounts.Authenticate(ctx, c.email, c.role, c.password)

			require.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized), err)
			appErr, _ := apperrors.As(err)
			assert.Equal(t, services.MsgInvalidCredentials, appErr.Message)
		}
	})
}

func TestAccountService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("denied account cannot log in until allowed again", func(t *testing.T) {
		p := newPortal()
		user := p.mustRegister(validRegistration())

		_, err := p.accounts.SetStatus(ctx, user.ID, entities.UserStatusDenied)
		require.NoError(t, err)

		_, err = p.accounts.Authenticate(ctx, user.Email, user.Role, user.Password)
		require.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		appErr, _ := apperrors.As(err)
		assert.Equal(t, services.MsgAccessDenied, appErr.Message)

		_, err = p.accounts.SetStatus(ctx, user.ID, entities.UserStatusActive)
		require.NoError(t, err)

		_, err = p.accounts.Authenticate(ctx, user.Email, user.Role, user.Password)
		assert.NoError(t, err)
	})

	t.Run("wrong password on a denied account is still invalid credentials", func(t *testing.T) {
		p := newPortal()
		user := p.mustRegister(validRegistration())
		_, err := p.accounts.SetStatus(ctx, user.ID, entities.UserStatusDenied)
		require.NoError(t, err)

		_, err = p.accounts.Authenticate(ctx, user.Email, user.Role, "wrong1")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("unknown id", func(t *testing.T) {
		p := newPortal()

		_, err := p.accounts.SetStatus(ctx, 42, entities.UserStatusDenied)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("invalid status", func(t *testing.T) {
		p := newPortal()
		user := p.mustRegister(validRegistration())

		_, err := p.accounts.SetStatus(ctx, user.ID, "suspended")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("legacy record without status is active", func(t *testing.T) {
		p := newPortal()
		require.NoError(t, p.store.Write(ctx, "medicare.users",
			[]byte(`[{"id":1,"fullName":"Old","role":"doctor","email":"d@gmail.com","password":"ab12cd"}]`)))

		user, err := p.accounts.Authenticate(ctx, "d@gmail.com", entities.RoleDoctor, "ab12cd")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})
}

func TestAccountService_ListByRole(t *testing.T) {
	ctx := context.Background()
	p := newPortal()
	p.mustRegister(validRegistration())
	doc := validRegistration()
	doc.Email = "d@gmail.com"
	doc.Role = entities.RoleDoctor
	p.mustRegister(doc)

	doctors, err := p.accounts.ListByRole(ctx, entities.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "d@gmail.com", doctors[0].Email)
}
