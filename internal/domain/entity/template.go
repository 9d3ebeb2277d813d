package entity

import "time"

type TemplateCategory string

const (
	TemplateCategoryAll        TemplateCategory = "all"
	TemplateCategoryNDA        TemplateCategory = "nda"
	TemplateCategoryMSA        TemplateCategory = "msa"
	TemplateCategorySOW        TemplateCategory = "sow"
	TemplateCategoryEmployment TemplateCategory = "employment"
	TemplateCategorySales      TemplateCategory = "sales"
)

// CategoryOption is one entry of the template picker tabs
type CategoryOption struct {
	ID    TemplateCategory `json:"id"`
	Label string           `json:"label"`
}

var TemplateCategories = []CategoryOption{
	{ID: TemplateCategoryAll, Label: "All Templates"},
	{ID: TemplateCategoryNDA, Label: "NDAs"},
	{ID: TemplateCategoryMSA, Label: "Master Agreements"},
	{ID: TemplateCategorySOW, Label: "Statements of Work"},
	{ID: TemplateCategoryEmployment, Label: "Employment"},
	{ID: TemplateCategorySales, Label: "Sales"},
}

func (c TemplateCategory) Valid() bool {
	for _, opt := range TemplateCategories {
		if opt.ID == c {
			return true
		}
	}
	return false
}

type VariableType string

const (
	VariableTypeText     VariableType = "text"
	VariableTypeDate     VariableType = "date"
	VariableTypeEmail    VariableType = "email"
	VariableTypeCurrency VariableType = "currency"
	VariableTypeTextarea VariableType = "textarea"
	VariableTypeSelect   VariableType = "select"
)

func (t VariableType) Valid() bool {
	switch t {
	case VariableTypeText, VariableTypeDate, VariableTypeEmail,
		VariableTypeCurrency, VariableTypeTextarea, VariableTypeSelect:
		return true
	}
	return false
}

type VariableOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type TemplateVariable struct {
	Key          string           `json:"key"`
	Label        string           `json:"label"`
	Type         VariableType     `json:"type"`
	Required     bool             `json:"required"`
	Placeholder  string           `json:"placeholder,omitempty"`
	Options      []VariableOption `json:"options,omitempty"`
	DefaultValue string           `json:"defaultValue,omitempty"`
}

// HasOption reports whether value is one of the select options
func (v *TemplateVariable) HasOption(value string) bool {
	for _, opt := range v.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

type Template struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    TemplateCategory   `json:"category"`
	Variables   []TemplateVariable `json:"variables"`
	PreviewURL  string             `json:"previewUrl,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func (t *Template) Clone() *Template {
	out := *t
	out.Variables = make([]TemplateVariable, len(t.Variables))
	for i, v := range t.Variables {
		v.Options = append([]VariableOption(nil), v.Options...)
		out.Variables[i] = v
	}
	return &out
}

// Variable looks up a variable by key
func (t *Template) Variable(key string) *TemplateVariable {
	for i := range t.Variables {
		if t.Variables[i].Key == key {
			return &t.Variables[i]
		}
	}
	return nil
}
