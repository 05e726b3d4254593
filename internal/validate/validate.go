// Package validate implements client-side form validation. Results use
// the same field-keyed message shape the server returns, so callers
// surface both through one code path.
package validate

import (
	"net/mail"

	"github.com/startuplens/lens/internal/api"
)

// Fields maps a field name to its validation messages. A nil map means
// the input passed.
type Fields = map[string][]string

func addError(fields Fields, field, msg string) Fields {
	if fields == nil {
		fields = make(Fields)
	}
	fields[field] = append(fields[field], msg)
	return fields
}

func minChars(fields Fields, field, value string, min int, msg string) Fields {
	if len([]rune(value)) < min {
		return addError(fields, field, msg)
	}
	return fields
}

// Login validates login credentials.
func Login(usernameOrEmail, password string) Fields {
	var fields Fields
	fields = minChars(fields, "username_or_email", usernameOrEmail, 1, "Username or email is required")
	fields = minChars(fields, "password", password, 6, "Password must be at least 6 characters")
	return fields
}

// Register validates a registration form.
func Register(r api.RegisterRequest) Fields {
	var fields Fields
	fields = minChars(fields, "first_name", r.FirstName, 2, "First name must be at least 2 characters")
	fields = minChars(fields, "last_name", r.LastName, 2, "Last name must be at least 2 characters")
	fields = minChars(fields, "username", r.Username, 3, "Username must be at least 3 characters")
	if _, err := mail.ParseAddress(r.Email); err != nil {
		fields = addError(fields, "email", "Please enter a valid email address")
	}
	fields = minChars(fields, "password", r.Password, 8, "Password must be at least 8 characters")
	return fields
}

// Idea validates a new idea submission.
func Idea(title, description string) Fields {
	var fields Fields
	fields = minChars(fields, "title", title, 3, "Title must be at least 3 characters")
	fields = minChars(fields, "description", description, 10, "Description must be at least 10 characters")
	return fields
}
