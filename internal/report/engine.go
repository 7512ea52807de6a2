package report

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/fjglira/LogTriage/internal/domain"
)

// Report formats.
const (
	FormatNone     = "none"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// ReportEngine renders analysis data into a report document.
type ReportEngine interface {
	Render(data Data, format string) (string, error)
	ListTemplates() []string
}

// DefaultEngine implements ReportEngine with text/template and goldmark.
type DefaultEngine struct {
	templates   map[string]*template.Template
	defaultName string
	templateDir string
	markdown    goldmark.Markdown
}

// NewEngine creates a report engine. Built-in templates are always loaded;
// templates found in templateDir (if set) override them by name.
func NewEngine(templateDir string, defaultTemplate string) (*DefaultEngine, error) {
	engine := &DefaultEngine{
		templates:   make(map[string]*template.Template),
		defaultName: defaultTemplate,
		templateDir: templateDir,
		markdown:    goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// table cells carry <br> line breaks
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}

	if err := engine.loadTemplates(builtin, "templates"); err != nil {
		return nil, err
	}
	if templateDir != "" {
		if _, err := os.Stat(templateDir); err != nil {
			return nil, domain.NewErrorWithSuggestion("template", templateDir, 0,
				"template directory not found",
				"create the directory or clear templates.directory to use the built-in report", err)
		}
		if err := engine.loadTemplates(os.DirFS(templateDir), "."); err != nil {
			return nil, err
		}
	}

	if _, ok := engine.templates[defaultTemplate]; !ok {
		return nil, domain.NewError("template", templateDir, 0,
			fmt.Sprintf("default template %q not found (available: %s)",
				defaultTemplate, strings.Join(engine.ListTemplates(), ", ")), nil)
	}
	return engine, nil
}

// loadTemplates reads all .tmpl files from dir within fsys.
func (e *DefaultEngine) loadTemplates(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return domain.NewError("template", e.templateDir, 0, "failed to read template directory", err)
	}

	funcMap := CustomFuncMap()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}

		path := filepath.ToSlash(filepath.Join(dir, entry.Name()))
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return domain.NewError("template", path, 0, "failed to read template file", err)
		}

		name := strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".tmpl"), ".md")
		tmpl, err := template.New(name).Funcs(funcMap).Parse(string(content))
		if err != nil {
			return domain.NewError("template", path, 0, "failed to parse template", err)
		}

		e.templates[name] = tmpl
	}
	return nil
}

// Render executes the default template. For FormatHTML the Markdown output
// is converted to a standalone HTML page.
func (e *DefaultEngine) Render(data Data, format string) (string, error) {
	tmpl := e.templates[e.defaultName]

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", domain.NewError("template", e.defaultName, 0, "failed to execute template", err)
	}

	switch format {
	case FormatMarkdown, "":
		return buf.String(), nil
	case FormatHTML:
		var page bytes.Buffer
		if err := e.markdown.Convert(buf.Bytes(), &page); err != nil {
			return "", domain.NewError("template", e.defaultName, 0, "failed to convert report to HTML", err)
		}
		return wrapHTML(data.Title, page.String()), nil
	default:
		return "", domain.NewErrorWithSuggestion("template", "", 0,
			fmt.Sprintf("unknown report format %q", format),
			"use markdown, html or none", nil)
	}
}

// ListTemplates returns the names of all loaded templates, sorted.
func (e *DefaultEngine) ListTemplates() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension for a report format.
func Extension(format string) string {
	if format == FormatHTML {
		return ".html"
	}
	return ".md"
}

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 8px; vertical-align: top; }
th { background: #d9e1f2; }
pre { background: #f4f4f4; padding: 8px; overflow-x: auto; }
</style>
</head>
<body>
%s</body>
</html>
`

func wrapHTML(title, body string) string {
	return fmt.Sprintf(htmlPage, template.HTMLEscapeString(title), body)
}
