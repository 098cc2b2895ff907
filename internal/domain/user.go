package domain

import "time"

// Role represents the role of a user in the system
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// User represents a trainer or a client
// Создается при первом аутентифицированном обращении либо тренером вручную;
// никогда не удаляется физически
type User struct {
	ID         string
	TelegramID *int64 // nil для клиентов, заведенных тренером по телефону
	Username   *string
	LastName   *string
	FirstName  *string
	Phone      *string
	BirthDate  *string // "YYYY-MM-DD"; для поздравлений важны только месяц и день

	PackageRemaining int
	Role             Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTrainer returns true if the user has the trainer role
func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

// HasProfile returns true if the profile is complete enough for booking
func (u *User) HasProfile() bool {
	return u.LastName != nil && *u.LastName != "" &&
		u.FirstName != nil && *u.FirstName != "" &&
		u.Phone != nil && *u.Phone != ""
}

// HasTelegram returns true if the user can receive Telegram notifications
func (u *User) HasTelegram() bool {
	return u.TelegramID != nil && *u.TelegramID != 0
}

// BirthdayMatches проверяет совпадение дня рождения с "MM-DD"
// Год игнорируется; отсутствующая или некорректная дата - не совпадение
func (u *User) BirthdayMatches(monthDay string) bool {
	if u.BirthDate == nil {
		return false
	}
	d := *u.BirthDate
	if len(d) < 10 {
		return false
	}
	return d[5:10] == monthDay
}

// FullName возвращает "Фамилия Имя" (пустые части опускаются)
func (u *User) FullName() string {
	last := ""
	if u.LastName != nil {
		last = *u.LastName
	}
	first := ""
	if u.FirstName != nil {
		first = *u.FirstName
	}
	switch {
	case last == "":
		return first
	case first == "":
		return last
	default:
		return last + " " + first
	}
}
