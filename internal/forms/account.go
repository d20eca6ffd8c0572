package forms

import (
	"blogicum/internal/models"
	"blogicum/internal/services"
	"strings"

	"github.com/gin-gonic/gin"
)

const usernameHelp = "Required. 150 characters or fewer. Letters, digits and @/./+/-/_ only."

// UsernameTakenMessage is shown when the chosen username belongs to someone else.
const UsernameTakenMessage = "A user with that username already exists."

// PasswordTooLongMessage is shown for passwords longer than bcrypt accepts.
const PasswordTooLongMessage = "Ensure this value has at most 72 bytes."

// LoginFailedMessage is the non-field error for a failed login.
const LoginFailedMessage = "Please enter a correct username and password. Note that both fields may be case-sensitive."

func bindFailed(f *Form) bool {
	f.AddError("", "The submitted form could not be read.")
	return false
}

type registrationData struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"required,email,max=254"`
	Password1 string `form:"password1" validate:"required,min=8,bcryptmax"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

type RegistrationForm struct {
	Form
	data registrationData
}

func NewRegistrationForm() *RegistrationForm {
	f := &RegistrationForm{}
	f.Fields = []*Field{
		{Name: "username", Label: "Username", Kind: KindText, Required: true, HelpText: usernameHelp, Attrs: map[string]string{"maxlength": "150", "autofocus": ""}},
		{Name: "email", Label: "Email address", Kind: KindEmail, Required: true},
		{Name: "password1", Label: "Password", Kind: KindPassword, Required: true, HelpText: "Your password must contain at least 8 characters."},
		{Name: "password2", Label: "Password confirmation", Kind: KindPassword, Required: true, HelpText: "Enter the same password as before, for verification."},
	}
	return f
}

func (f *RegistrationForm) Bind(c *gin.Context) bool {
	if err := c.ShouldBind(&f.data); err != nil {
		return bindFailed(&f.Form)
	}
	f.data.Username = strings.TrimSpace(f.data.Username)
	f.data.Email = strings.TrimSpace(f.data.Email)
	f.SetValue("username", f.data.Username)
	f.SetValue("email", f.data.Email)
	check(&f.Form, f.data)
	return f.Valid()
}

func (f *RegistrationForm) Input() services.RegistrationInput {
	return services.RegistrationInput{
		Username: f.data.Username,
		Email:    f.data.Email,
		Password: f.data.Password1,
	}
}

type profileData struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
}

type ProfileForm struct {
	Form
	data profileData
}

func NewProfileForm() *ProfileForm {
	f := &ProfileForm{}
	f.Fields = []*Field{
		{Name: "first_name", Label: "First name", Kind: KindText, Attrs: map[string]string{"maxlength": "150"}},
		{Name: "last_name", Label: "Last name", Kind: KindText, Attrs: map[string]string{"maxlength": "150"}},
		{Name: "username", Label: "Username", Kind: KindText, Required: true, HelpText: usernameHelp, Attrs: map[string]string{"maxlength": "150"}},
		{Name: "email", Label: "Email address", Kind: KindEmail},
	}
	return f
}

func (f *ProfileForm) Fill(u *models.User) {
	f.SetValue("first_name", u.FirstName)
	f.SetValue("last_name", u.LastName)
	f.SetValue("username", u.Username)
	f.SetValue("email", u.Email)
}

func (f *ProfileForm) Bind(c *gin.Context) bool {
	if err := c.ShouldBind(&f.data); err != nil {
		return bindFailed(&f.Form)
	}
	f.data.FirstName = strings.TrimSpace(f.data.FirstName)
	f.data.LastName = strings.TrimSpace(f.data.LastName)
	f.data.Username = strings.TrimSpace(f.data.Username)
	f.data.Email = strings.TrimSpace(f.data.Email)
	f.Fill(&models.User{
		FirstName: f.data.FirstName,
		LastName:  f.data.LastName,
		Username:  f.data.Username,
		Email:     f.data.Email,
	})
	check(&f.Form, f.data)
	return f.Valid()
}

func (f *ProfileForm) Input() services.ProfileInput {
	return services.ProfileInput{
		FirstName: f.data.FirstName,
		LastName:  f.data.LastName,
		Username:  f.data.Username,
		Email:     f.data.Email,
	}
}

type loginData struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

type LoginForm struct {
	Form
	data loginData
}

// NewLoginForm builds the login form; next is where to go after logging in.
func NewLoginForm(next string) *LoginForm {
	f := &LoginForm{}
	f.Fields = []*Field{
		{Name: "username", Label: "Username", Kind: KindText, Required: true, Attrs: map[string]string{"autofocus": ""}},
		{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
		{Name: "next", Kind: KindHidden, Value: SafeNext(next)},
	}
	return f
}

func (f *LoginForm) Bind(c *gin.Context) bool {
	if err := c.ShouldBind(&f.data); err != nil {
		return bindFailed(&f.Form)
	}
	f.data.Username = strings.TrimSpace(f.data.Username)
	f.data.Next = SafeNext(f.data.Next)
	f.SetValue("username", f.data.Username)
	f.SetValue("next", f.data.Next)
	check(&f.Form, f.data)
	return f.Valid()
}

func (f *LoginForm) Credentials() (username, password string) {
	return f.data.Username, f.data.Password
}

func (f *LoginForm) Next() string {
	return f.data.Next
}

// SafeNext keeps only same-site absolute paths; anything else becomes "".
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}
