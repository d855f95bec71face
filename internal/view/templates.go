package view

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/netline-isp/isp-console/internal/listing"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	CurrentUser *shared.CurrentUser
	Data        any
}

// IsAdmin reports whether the signed-in user is an admin.
func (d TemplateData) IsAdmin() bool {
	return d.CurrentUser != nil && d.CurrentUser.IsAdmin()
}

// Section reports whether the current path sits under prefix, for nav highlighting.
func (d TemplateData) Section(prefix string) bool {
	return d.CurrentPath == prefix || strings.HasPrefix(d.CurrentPath, prefix+"/")
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(Funcs()).ParseFS(web.Templates,
		"templates/layouts/*.html",
		"templates/partials/*.html",
		"templates/pages/*.html",
		"templates/pages/*/*.html",
		"templates/documents/*.html",
	)
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.Execute(w, name, data)
}

// Execute writes a named template to w, for documents that are not served
// directly such as PDF sources.
func (e *Engine) Execute(w io.Writer, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	return e.templates.ExecuteTemplate(w, name, data)
}

// Funcs is the helper set available to every page and document template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"rs":          func(v any) string { return shared.FormatRs(toDecimal(v)) },
		"rsSpaced":    func(v any) string { return shared.FormatRsSpaced(toDecimal(v)) },
		"money":       func(v any) string { return shared.FormatGrouped(toDecimal(v)) },
		"mbps":        func(v any) string { return fmt.Sprintf("%s Mbps", toDecimal(v).String()) },
		"percent":     func(v any) string { return toDecimal(v).Round(1).String() + "%" },
		"unixDate":    shared.FormatDisplayDate,
		"dateInput":   shared.UnixToDateInput,
		"label":       Label,
		"initials":    initials,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"sortMark":    sortMark,
		"sortLink":    sortLink,
		"pageItems":   pageItems,
		"displayDate": displayDate,
		"hasRole":     hasRole,
		"dict":        dict,
		"statusClass": statusClass,
	}
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	}
	return shared.Amount(cast.ToFloat64(v))
}

// Label turns identifiers like power_supply or jazzcash into display text.
func Label(s string) string {
	switch s {
	case "jazzcash":
		return "JazzCash"
	case "easypaisa":
		return "EasyPaisa"
	}
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// initials takes the first letter of the first and last names.
func initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	first := func(s string) string {
		r, _ := utf8.DecodeRuneInString(s)
		return strings.ToUpper(string(r))
	}
	out := first(fields[0])
	if len(fields) > 1 {
		out += first(fields[len(fields)-1])
	}
	return out
}

func sortMark(s listing.Sort, key string) string {
	if !s.Active(key) {
		return ""
	}
	if s.Dir == listing.Desc {
		return "↓"
	}
	return "↑"
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func statusClass(status string) string {
	switch strings.ToLower(status) {
	case "paid", "active", "normal":
		return "badge-success"
	case "pending", "low":
		return "badge-warning"
	case "overdue", "inactive", "cancelled":
		return "badge-danger"
	default:
		return "badge-muted"
	}
}
