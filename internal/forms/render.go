package forms

import (
	"html/template"
	"log"
	"sort"
	"strings"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"
)

// Render returns the form's fields as Bootstrap markup. The surrounding
// <form> element, CSRF token and submit button belong to the page template.
func Render(f *Form) template.HTML {
	var b strings.Builder
	for _, n := range FormNodes(f) {
		if n == nil {
			continue
		}
		if err := n.Render(&b); err != nil {
			log.Printf("Failed to render form: %v", err)
			return ""
		}
	}
	return template.HTML(b.String())
}

// HTML renders the form, for use as {{.Form.HTML}} in page templates.
func (f *Form) HTML() template.HTML {
	return Render(f)
}

// Multipart reports whether the form needs multipart/form-data encoding.
func (f *Form) Multipart() bool {
	for _, field := range f.Fields {
		if field.Kind == KindFile {
			return true
		}
	}
	return false
}

// FormNodes returns the top-level nodes: the error alert, then one node per field.
func FormNodes(f *Form) []g.Node {
	return append([]g.Node{nonFieldErrors(f.NonFieldErrors())}, g.Map(f.Fields, fieldNode)...)
}

func nonFieldErrors(errs []string) g.Node {
	if len(errs) == 0 {
		return nil
	}
	return h.Div(h.Class("alert alert-danger"), g.Attr("role", "alert"),
		g.Group(g.Map(errs, func(msg string) g.Node {
			return h.Div(g.Text(msg))
		})),
	)
}

func fieldNode(f *Field) g.Node {
	switch f.Kind {
	case KindHidden:
		return h.Input(h.Type("hidden"), h.Name(f.Name), h.ID(f.ID()), h.Value(f.Value))
	case KindCheckbox:
		return h.Div(h.Class("mb-3 form-check"),
			control(f),
			h.Label(h.Class("form-check-label"), h.For(f.ID()), g.Text(f.Label)),
			feedback(f),
		)
	}
	return h.Div(h.Class("mb-3"),
		h.Label(h.Class("form-label"), h.For(f.ID()), g.Text(f.Label)),
		control(f),
		feedback(f),
	)
}

func feedback(f *Field) g.Node {
	return g.Group([]g.Node{
		g.Group(g.Map(f.Errors, func(msg string) g.Node {
			return h.Div(h.Class("invalid-feedback d-block"), g.Text(msg))
		})),
		g.If(f.HelpText != "", h.Small(h.Class("form-text text-muted"), g.Text(f.HelpText))),
	})
}

func inputClass(f *Field) string {
	base := "form-control"
	switch f.Kind {
	case KindSelect:
		base = "form-select"
	case KindCheckbox:
		base = "form-check-input"
	}
	if len(f.Errors) > 0 {
		base += " is-invalid"
	}
	return base
}

func control(f *Field) g.Node {
	common := []g.Node{
		h.Name(f.Name),
		h.ID(f.ID()),
		h.Class(inputClass(f)),
		g.If(f.Required, h.Required()),
		attrs(f.Attrs),
	}

	switch f.Kind {
	case KindTextarea:
		return h.Textarea(append(common, g.Text(f.Value))...)
	case KindSelect:
		return h.Select(append(common, g.Group(g.Map(f.Choices, func(ch Choice) g.Node {
			return h.Option(h.Value(ch.Value), g.If(ch.Value == f.Value, h.Selected()), g.Text(ch.Label))
		})))...)
	case KindCheckbox:
		return h.Input(append(common, h.Type("checkbox"), g.If(f.Checked, h.Checked()))...)
	case KindFile, KindPassword:
		return h.Input(append(common, h.Type(string(f.Kind)))...)
	}
	return h.Input(append(common, h.Type(string(f.Kind)), h.Value(f.Value))...)
}

// attrs renders extra attributes in a stable order.
func attrs(m map[string]string) g.Node {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return g.Group(g.Map(keys, func(k string) g.Node {
		return g.Attr(k, m[k])
	}))
}
