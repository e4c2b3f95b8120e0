package extract

// FieldKind is the JSON shape a schema field is expected to take.
type FieldKind int

const (
	KindString     FieldKind = iota // scalar string, null allowed
	KindStringList                  // array of strings
	KindList                        // array of anything
	KindObjectList                  // array of objects with Keys
)

// Field is one target field of the extraction.
type Field struct {
	Name  string // JSON key
	Label string // how the prompt names it
	Kind  FieldKind
	Keys  []string // entry keys for KindObjectList
	Note  string   // extra prompt guidance
}

// Schema is the declared list of fields. It drives both the prompt text
// and the optional JSON Schema check.
type Schema struct {
	Fields []Field
}

// ResumeSchema is the field set extracted from every resume.
var ResumeSchema = Schema{Fields: []Field{
	{Name: "name", Label: "Name", Kind: KindString},
	{Name: "email", Label: "Email", Kind: KindString},
	{Name: "phone_number", Label: "Phone Number", Kind: KindString},
	{Name: "skills", Label: "Skills", Kind: KindStringList},
	{
		Name:  "work_experiences",
		Label: "Work Experiences",
		Kind:  KindObjectList,
		Keys:  []string{"company_name", "job_title", "start_date", "end_date", "description"},
		Note:  `The description summarizes achievements and tasks. If the end date is ongoing or not explicitly mentioned, use "Present".`,
	},
	{Name: "projects", Label: "Projects", Kind: KindList},
	{
		Name:  "educational_qualifications",
		Label: "Educational Qualifications",
		Kind:  KindObjectList,
		Keys:  []string{"degree", "institution", "start_year", "end_year"},
		Note:  "Include start_year only if mentioned.",
	},
	{Name: "certifications", Label: "Certifications", Kind: KindList},
	{Name: "hobbies", Label: "Hobbies", Kind: KindStringList},
	{Name: "languages", Label: "Languages", Kind: KindStringList},
}}

// Names returns the top-level JSON keys in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// JSONSchema renders the schema as a draft 2020-12 JSON Schema document.
// Fields are optional and extra keys are allowed; only shapes are checked.
func (s Schema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = fieldSchema(f)
	}
	return map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": props,
	}
}

func fieldSchema(f Field) map[string]any {
	scalar := []any{"string", "number", "null"}
	switch f.Kind {
	case KindStringList:
		return map[string]any{
			"type":  []any{"array", "null"},
			"items": map[string]any{"type": scalar},
		}
	case KindList:
		return map[string]any{"type": []any{"array", "null"}}
	case KindObjectList:
		keys := make(map[string]any, len(f.Keys))
		for _, k := range f.Keys {
			keys[k] = map[string]any{"type": scalar}
		}
		return map[string]any{
			"type": []any{"array", "null"},
			"items": map[string]any{
				"type":       "object",
				"properties": keys,
			},
		}
	default:
		return map[string]any{"type": scalar}
	}
}
