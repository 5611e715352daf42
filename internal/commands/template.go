package commands

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-fishery/internal/display"
)

var templateFuncs = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["coins"] = display.Coins
	fm["percent"] = display.Percent
	return fm
}()

// parsed caches templates by source text. Command configs are fixed once
// loaded, so the cache stays as small as the asset set.
var parsed sync.Map

func parseTemplate(src string) (*template.Template, error) {
	if t, ok := parsed.Load(src); ok {
		return t.(*template.Template), nil
	}
	t, err := template.New("").Funcs(templateFuncs).Parse(src)
	if err != nil {
		return nil, err
	}
	parsed.Store(src, t)
	return t, nil
}

// Render executes src against data. Fields are reached as {{ .Name }}; the
// sprig helpers plus coins and percent are available.
func Render(src string, data any) (string, error) {
	t, err := parseTemplate(src)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return sb.String(), nil
}

// expandInputTemplate fills player inputs into a config value before the
// handler runs. Values that never mention .Inputs are message templates the
// handler renders itself, so they pass through untouched.
func expandInputTemplate(src string, inputs map[string]any) (string, error) {
	if !strings.Contains(src, "{{") || !strings.Contains(src, ".Inputs") {
		return src, nil
	}
	return Render(src, &InputContext{Inputs: inputs})
}

// checkTemplate reports a parse failure in a configured template at load time.
func checkTemplate(name, src string) error {
	if _, err := parseTemplate(src); err != nil {
		return fmt.Errorf("config %q: %w", name, err)
	}
	return nil
}
