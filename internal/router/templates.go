package router

import (
	"blogicum/internal/models"
	"blogicum/internal/query"
	"blogicum/internal/utils"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-contrib/multitemplate"
)

const (
	templatesRoot = "templates"
	layoutFile    = "templates/layouts/base.html"
	includesGlob  = "templates/includes/*.html"
)

var funcMap = template.FuncMap{
	"dict": func(values ...interface{}) (map[string]interface{}, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("invalid dict call")
		}
		dict := make(map[string]interface{}, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2 January 2006, 15:04")
	},
	"renderText": utils.RenderText,
	"excerpt": func(text string, n int) string {
		return utils.Truncate(utils.PlainText(string(utils.RenderText(text))), n)
	},
	"visible": func(p models.Post, now time.Time) bool {
		return query.Visible(&p, now)
	},
	// Unpublished locations are not shown to readers.
	"locationName": func(l *models.Location) string {
		if l == nil || !l.IsPublished {
			return "Planet Earth"
		}
		return l.Name
	},
}

// LoadTemplates registers every page under templates/ except the layout and
// includes. Each page is parsed together with the layout and all includes and
// is registered under its path relative to templates/, e.g. "blog/index.html".
func LoadTemplates(fsys fs.FS) (multitemplate.Render, error) {
	r := multitemplate.New()

	includes, err := fs.Glob(fsys, includesGlob)
	if err != nil {
		return nil, err
	}

	err = fs.WalkDir(fsys, templatesRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}
		name := strings.TrimPrefix(p, templatesRoot+"/")
		if strings.HasPrefix(name, "layouts/") || strings.HasPrefix(name, "includes/") {
			return nil
		}

		files := append([]string{layoutFile}, includes...)
		files = append(files, p)
		tmpl, err := template.New(path.Base(layoutFile)).Funcs(funcMap).ParseFS(fsys, files...)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.Add(name, tmpl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
