// Package forms describes HTML forms, validates their submissions and renders
// them with Bootstrap markup.
package forms

type Kind string

const (
	KindText          Kind = "text"
	KindEmail         Kind = "email"
	KindPassword      Kind = "password"
	KindTextarea      Kind = "textarea"
	KindDateTimeLocal Kind = "datetime-local"
	KindSelect        Kind = "select"
	KindFile          Kind = "file"
	KindCheckbox      Kind = "checkbox"
	KindHidden        Kind = "hidden"
)

type Choice struct {
	Value string
	Label string
}

type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Value    string
	Checked  bool
	Errors   []string
	HelpText string
	Choices  []Choice
	Attrs    map[string]string
	Required bool
}

// ID is the element id used to tie the label to the input.
func (f *Field) ID() string {
	return "id_" + f.Name
}

// Form is an ordered set of fields plus errors that belong to no single field.
type Form struct {
	Errors []string
	Fields []*Field
}

// Field returns the named field, or nil.
func (f *Form) Field(name string) *Field {
	for _, field := range f.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// AddError attaches msg to the named field. An empty or unknown name makes it
// a non-field error.
func (f *Form) AddError(name, msg string) {
	if field := f.Field(name); field != nil {
		field.Errors = append(field.Errors, msg)
		return
	}
	f.Errors = append(f.Errors, msg)
}

func (f *Form) Valid() bool {
	if len(f.Errors) > 0 {
		return false
	}
	for _, field := range f.Fields {
		if len(field.Errors) > 0 {
			return false
		}
	}
	return true
}

// NonFieldErrors returns the form-level errors followed by the errors of
// hidden fields, which have nowhere else to be shown.
func (f *Form) NonFieldErrors() []string {
	out := append([]string(nil), f.Errors...)
	for _, field := range f.Fields {
		if field.Kind == KindHidden {
			out = append(out, field.Errors...)
		}
	}
	return out
}

// SetValue sets the named field's value, if the field exists.
func (f *Form) SetValue(name, value string) {
	if field := f.Field(name); field != nil {
		field.Value = value
	}
}

func (f *Form) Value(name string) string {
	if field := f.Field(name); field != nil {
		return field.Value
	}
	return ""
}
