package plan

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"wpc/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Name     string
	Format   string
	Width    int
	Height   int
	Displays []string
}

func buildDisplayNames(plans []Plan) []string {
	result := make([]string, 0, len(plans))
	for _, p := range plans {
		result = append(result, p.Display)
	}
	return result
}

func expandTemplate(doc *Document, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:  string(name),
		Name:     strings.TrimSuffix(filepath.Base(doc.Source), filepath.Ext(doc.Source)),
		Format:   doc.Format,
		Width:    doc.Raw.Width,
		Height:   doc.Raw.Height,
		Displays: buildDisplayNames(doc.Plans),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
