package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/domain/providers"
	"github.com/Saranya396/projectt/internal/domain/repositories"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

// Account error messages shown to callers
const (
	MsgInvalidCredentials = "invalid credentials"
	MsgAccessDenied       = "access denied"
)

// RegisterInput is a signup form submission
type RegisterInput struct {
	FullName string        `json:"fullName"`
	Gender   string        `json:"gender"`
	Age      FormInt       `json:"age"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Password string        `json:"password"`
	Role     entities.Role `json:"role"`
}

// FormInt is a whole number that signup forms may send as a JSON number or
// a numeric string. Anything else decodes to 0 so validation reports it.
type FormInt int

// UnmarshalJSON accepts 20, "20" and " 20 "
func (n *FormInt) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	if text == "null" {
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		v = 0
	}
	*n = FormInt(v)
	return nil
}

// AccountService handles signup, login and account status
type AccountService struct {
	repo   repositories.UserRepository
	ids    *IDGenerator
	events publisher
}

// NewAccountService creates a new account service
func NewAccountService(repo repositories.UserRepository, ids *IDGenerator, opts ...Option) *AccountService {
	return &AccountService{repo: repo, ids: ids, events: publisherFrom(opts)}
}

// Register validates the candidate and stores it as an active account.
// The first failing rule is reported; (email, role) must be unused.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == in.Email && u.Role == in.Role {
			return nil, apperrors.NewConflictError("an account with this email already exists for role " + string(in.Role))
		}
	}

	user := entities.User{
		ID:       s.ids.Next(),
		FullName: strings.TrimSpace(in.FullName),
		Role:     in.Role,
		Gender:   strings.TrimSpace(in.Gender),
		Age:      int(in.Age),
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
		Status:   entities.UserStatusActive,
	}

	if err := s.repo.Save(ctx, append(users, user)); err != nil {
		return nil, err
	}

	s.events.publish(ctx,
		entities.NewPortalEvent(entities.PortalEventAccountRegistered, user.ID, user.Email, string(user.Role), time.Now()),
		providers.RoleChannel(entities.RoleAdmin))
	return &user, nil
}

// Authenticate finds the account matching all three fields exactly.
// Unknown email, wrong role and wrong password are indistinguishable.
func (s *AccountService) Authenticate(ctx context.Context, email string, role entities.Role, password string) (*entities.User, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email != email || u.Role != role || u.Password != password {
			continue
		}
		if u.IsDenied() {
			return nil, apperrors.NewForbiddenError(MsgAccessDenied)
		}
		return &u, nil
	}
	return nil, apperrors.NewUnauthorizedError(MsgInvalidCredentials)
}

// SetStatus overwrites the status of the account with the given id
func (s *AccountService) SetStatus(ctx context.Context, id int64, status entities.UserStatus) (*entities.User, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status must be active or denied")
	}

	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID != id {
			continue
		}
		users[i].Status = status
		if err := s.repo.Save(ctx, users); err != nil {
			return nil, err
		}
		updated := users[i]

		// an admin's own stream already carries the admin role channel
		channels := []string{providers.RoleChannel(entities.RoleAdmin)}
		if updated.Role != entities.RoleAdmin {
			channels = append(channels, providers.UserChannel(updated.Role, updated.Email))
		}
		s.events.publish(ctx,
			entities.NewPortalEvent(entities.PortalEventAccountStatusChanged, updated.ID, updated.Email, string(status), time.Now()),
			channels...)
		return &updated, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

// ListUsers returns every account in registration order
func (s *AccountService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.repo.Load(ctx)
}

// ListByRole returns the accounts holding role
func (s *AccountService) ListByRole(ctx context.Context, role entities.Role) ([]entities.User, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filterRecords(users, func(u entities.User) bool { return u.Role == role }), nil
}

func validateRegistration(in RegisterInput) error {
	switch {
	case blank(in.FullName):
		return apperrors.NewValidationError("full name is required")
	case blank(in.Gender):
		return apperrors.NewValidationError("gender is required")
	case in.Age <= 0:
		return apperrors.NewValidationError("age must be a positive number")
	case !strings.Contains(in.Email, "@gmail.com"):
		return apperrors.NewValidationError("email must be a @gmail.com address")
	case !isPhoneNumber(in.Phone):
		return apperrors.NewValidationError("phone number must be exactly 10 digits")
	case !isValidPassword(in.Password):
		return apperrors.NewValidationError("password must be at least 6 letters and digits with at least one of each")
	case !in.Role.Valid():
		return apperrors.NewValidationError("role must be one of admin, doctor, patient, pharmacist")
	}
	return nil
}

func isPhoneNumber(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isValidPassword(s string) bool {
	if len(s) < 6 {
		return false
	}
	var letter, digit bool
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			letter = true
		default:
			return false
		}
	}
	return letter && digit
}
