// Package whatsapp is a minimal client for the WhatsApp Cloud (Graph) API.
package whatsapp

// Credentials identify the sending business phone number.
type Credentials struct {
	PhoneNumberID string
	AccessToken   string
}

// TemplateMessage is the Graph API request body for a template send.
type TemplateMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Template         Template `json:"template"`
}

type Template struct {
	Name       string      `json:"name"`
	Language   Language    `json:"language"`
	Components []Component `json:"components,omitempty"`
}

type Language struct {
	Code string `json:"code"`
}

type Component struct {
	Type       string      `json:"type"`
	SubType    string      `json:"sub_type,omitempty"`
	Index      string      `json:"index,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

type Parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTemplateMessage builds a template send for one recipient.
func NewTemplateMessage(to, name, language string, components []Component) *TemplateMessage {
	return &TemplateMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "template",
		Template: Template{
			Name:       name,
			Language:   Language{Code: language},
			Components: components,
		},
	}
}

// WithLanguage returns a copy of m targeting another locale.
func (m *TemplateMessage) WithLanguage(language string) *TemplateMessage {
	cp := *m
	cp.Template.Language = Language{Code: language}
	return &cp
}

type sendResponse struct {
	MessagingProduct string `json:"messaging_product"`
	Contacts         []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type errorEnvelope struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}
