package userform

import "github.com/goliatone/go-userform/pkg/form"

// Field names of the create-user form.
const (
	FieldFullName = "fullName"
	FieldAge      = "age"
	FieldPassword = "password"
	FieldEmail    = "email"
	FieldCountry  = "country"
)

// EmailPattern accepts letters, digits, dot, underscore and hyphen in the
// local part and a two to six letter TLD.
const EmailPattern = `^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`

// Password messages, reported one at a time in this priority order.
const (
	MsgPasswordTooShort     = "Password must be at least 8 characters"
	MsgPasswordSameFullName = "Password must be different from full name"
	MsgPasswordSameAge      = "Password must be different from age"
	MsgPasswordSameEmail    = "Password must be different from email"
	MsgAgeNotNumber         = "Age must be a number"
)

const passwordMinLength = 8

// Fields returns the create-user field definitions in display order.
func Fields() []form.FieldDefinition {
	return []form.FieldDefinition{
		{
			Name:  FieldFullName,
			Label: "Full name",
			Kind:  form.InputText,
			Rules: []form.Rule{
				form.Required("Full name is required"),
				form.MinLength(3, "Full name must be at least 3 characters"),
				form.MaxLength(50, "Full name must be at most 50 characters"),
			},
			InvalidMessage: "Full name is invalid",
		},
		{
			Name:  FieldAge,
			Label: "Age",
			Kind:  form.InputText,
			Rules: []form.Rule{
				form.Required("Age is required"),
				form.Numeric(MsgAgeNotNumber),
				form.NumericRange(18, 100, "Age must be between 18 and 100"),
			},
			InvalidMessage: "Age is invalid",
		},
		{
			Name:    FieldPassword,
			Label:   "Password",
			Kind:    form.InputPassword,
			Initial: "",
			Rules: []form.Rule{
				form.CrossField("password", checkPassword),
			},
		},
		{
			Name:  FieldEmail,
			Label: "Email",
			Kind:  form.InputEmail,
			Rules: []form.Rule{
				form.Required("Email is required"),
				form.Pattern(EmailPattern, "Email must be a valid address"),
			},
			InvalidMessage: "Email is invalid",
		},
		{
			Name:  FieldCountry,
			Label: "Country",
			Kind:  form.InputSelect,
			Options: []form.Option{
				{Value: "", Label: "Select your country"},
				{Value: "MA", Label: "Morocco"},
				{Value: "DZ", Label: "Algeria"},
				{Value: "TN", Label: "Tunisia"},
			},
		},
	}
}

// NewRegistry builds a registry over Fields.
func NewRegistry() *form.Registry {
	return form.MustRegistry(Fields()...)
}

// checkPassword compares the password against its siblings. The age is
// compared in its text form. Length counts runes, so an astral character such
// as an emoji counts once rather than as two UTF-16 units.
func checkPassword(value form.Value, snap form.Snapshot) string {
	password := form.Stringify(value)
	switch {
	case len([]rune(password)) < passwordMinLength:
		return MsgPasswordTooShort
	case password == snap.String(FieldFullName):
		return MsgPasswordSameFullName
	case password == snap.String(FieldAge):
		return MsgPasswordSameAge
	case password == snap.String(FieldEmail):
		return MsgPasswordSameEmail
	default:
		return ""
	}
}
