package notify

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

const timeLayout = "02.01.2006 15:04"

var funcs = template.FuncMap{
	"when": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format(timeLayout)
	},
}

var templates = map[Kind]struct {
	subject string
	body    *template.Template
}{
	KindReservationCreated: {
		subject: "Potvrzení rezervace",
		body: template.Must(template.New("reservation.created").Funcs(funcs).Parse(
			`Dobrý den {{.Name}},

děkujeme za rezervaci místa {{.Title}}.
Od: {{when .Start}}
Do: {{when .End}}

Cena: {{.Amount}} Kč
Číslo účtu: {{.Account}}
Variabilní symbol: {{.VariableSymbol}}

Rezervace je platná po připsání platby na účet.
`)),
	},
	KindReservationPaid: {
		subject: "Platba přijata",
		body: template.Must(template.New("reservation.paid").Funcs(funcs).Parse(
			`Dobrý den {{.Name}},

platba za rezervaci místa {{.Title}} ({{when .Start}}) byla přijata. Těšíme se na vás.
`)),
	},
	KindReservationCancelled: {
		subject: "Rezervace zrušena",
		body: template.Must(template.New("reservation.cancelled").Funcs(funcs).Parse(
			`Dobrý den {{.Name}},

vaše rezervace místa {{.Title}} od {{when .Start}} byla zrušena.
`)),
	},
	KindRegistrationCreated: {
		subject: "Registrace na závody",
		body: template.Must(template.New("registration.created").Funcs(funcs).Parse(
			`Dobrý den {{.Name}},

děkujeme za registraci na závod {{.Title}} ({{when .Start}}).

Startovné: {{.Amount}} Kč
Číslo účtu: {{.Account}}
Variabilní symbol: {{.VariableSymbol}}
`)),
	},
	KindRegistrationPaid: {
		subject: "Startovné přijato",
		body: template.Must(template.New("registration.paid").Funcs(funcs).Parse(
			`Dobrý den {{.Name}},

startovné na závod {{.Title}} bylo přijato.
`)),
	},
}

func Render(msg Message) (subject, body string, err error) {
	tpl, ok := templates[msg.Kind]
	if !ok {
		return "", "", fmt.Errorf("no template for %q", msg.Kind)
	}
	var buf bytes.Buffer
	if err := tpl.body.Execute(&buf, msg); err != nil {
		return "", "", fmt.Errorf("render %s: %w", msg.Kind, err)
	}
	return tpl.subject, buf.String(), nil
}
