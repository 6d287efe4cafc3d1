package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/whatsapp"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\d+)\s*\}\}`)

// maxPhoneDigits is the E.164 limit.
const maxPhoneDigits = 15

// NormalizePhone keeps digits only.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RenderTemplate resolves the component parameters for contact. It returns the
// provider components and the human-readable text kept on the send log.
func RenderTemplate(tpl models.TemplateRef, contact models.Contact) ([]whatsapp.Component, string) {
	var (
		components []whatsapp.Component
		lines      []string
	)

	for _, comp := range tpl.Components {
		values := make([]string, len(comp.Parameters))
		for i, p := range comp.Parameters {
			values[i] = resolveParameter(p, contact)
		}

		kind := strings.ToUpper(comp.Type)
		switch kind {
		case "HEADER", "BODY", "FOOTER":
			if text := fillPlaceholders(comp.Text, values); text != "" {
				lines = append(lines, text)
			}
		}

		if len(values) == 0 {
			continue
		}

		out := whatsapp.Component{
			Type:       strings.ToLower(kind),
			Parameters: make([]whatsapp.Parameter, len(values)),
		}
		for i, v := range values {
			out.Parameters[i] = whatsapp.Parameter{Type: "text", Text: v}
		}
		if kind == "BUTTON" {
			out.SubType = strings.ToLower(comp.SubType)
			if out.SubType == "" {
				out.SubType = "url"
			}
			out.Index = strconv.Itoa(comp.Index)
		}
		components = append(components, out)
	}

	return components, strings.Join(lines, "\n")
}

func resolveParameter(p string, contact models.Contact) string {
	r := strings.NewReplacer(
		"{{name}}", contact.Name,
		"{{phone}}", contact.Phone,
		"{{email}}", contact.Email,
	)
	return r.Replace(p)
}

// fillPlaceholders replaces 1-based {{n}} markers. Markers without a value are kept.
func fillPlaceholders(text string, values []string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
		n, err := strconv.Atoi(placeholderPattern.FindStringSubmatch(m)[1])
		if err != nil || n < 1 || n > len(values) {
			return m
		}
		return values[n-1]
	})
}
