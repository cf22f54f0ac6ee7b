package entities

// Role identifies which dashboard an account opens.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDoctor     Role = "doctor"
	RolePatient    Role = "patient"
	RolePharmacist Role = "pharmacist"
)

// Roles lists every role in the order the portal presents them.
var Roles = []Role{RoleAdmin, RoleDoctor, RolePatient, RolePharmacist}

// Valid reports whether r is one of the portal roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// UserStatus gates whether an account may log in.
type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusDenied UserStatus = "denied"
)

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusDenied
}

// User is a registered account as persisted in the users slot.
// Records written before the status flag existed have an empty Status and
// are treated as active.
type User struct {
	ID       int64      `json:"id"`
	FullName string     `json:"fullName"`
	Role     Role       `json:"role"`
	Gender   string     `json:"gender"`
	Age      int        `json:"age"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Password string     `json:"password"`
	Status   UserStatus `json:"status"`
}

// IsDenied reports whether an admin has blocked the account.
func (u User) IsDenied() bool {
	return u.Status == UserStatusDenied
}

// UserProfile is the API view of a User. It never carries the password.
type UserProfile struct {
	ID       int64      `json:"id"`
	FullName string     `json:"fullName"`
	Role     Role       `json:"role"`
	Gender   string     `json:"gender"`
	Age      int        `json:"age"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Status   UserStatus `json:"status"`
}

// Profile strips the password from u.
func (u User) Profile() UserProfile {
	status := u.Status
	if status == "" {
		status = UserStatusActive
	}
	return UserProfile{
		ID:       u.ID,
		FullName: u.FullName,
		Role:     u.Role,
		Gender:   u.Gender,
		Age:      u.Age,
		Email:    u.Email,
		Phone:    u.Phone,
		Status:   status,
	}
}

// Profiles maps Profile over users.
func Profiles(users []User) []UserProfile {
	out := make([]UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out
}
