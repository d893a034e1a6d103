package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"

	"github.com/ytget/videogen/internal/model"
)

// RoleAlert is the accessibility role of every banner
const RoleAlert = "alert"

// Fragment is a rendered, not yet displayed, notification banner
type Fragment struct {
	ID          string
	Message     string
	Severity    model.Severity
	Classes     []string
	Role        string
	Dismissible bool
}

// Render builds the banner for message. It has no side effects besides
// allocating a fresh ID.
func Render(message string, severity model.Severity) Fragment {
	return Fragment{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		Classes: []string{
			"alert",
			"alert-" + severity.String(),
			"alert-dismissible",
			"fade",
			"show",
		},
		Role:        RoleAlert,
		Dismissible: true,
	}
}

// ClassName joins the class list
func (f Fragment) ClassName() string {
	return strings.Join(f.Classes, " ")
}

// Markup returns the banner as an HTML snippet with the message escaped
func (f Fragment) Markup() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<div class="%s" role="%s">`, f.ClassName(), f.Role))
	b.WriteString(html.EscapeString(f.Message))
	if f.Dismissible {
		b.WriteString(`<button type="button" class="btn-close" data-bs-dismiss="alert" aria-label="Close"></button>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
