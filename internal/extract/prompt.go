package extract

import (
	"fmt"
	"strings"
)

const promptHeader = "Extract the following information from the given resume text:"

const promptRules = `Return the output **strictly as a valid JSON object** with no extra text.
Do not put literal line breaks inside string values; write \n if a line break is needed.`

// BuildPrompt renders the extraction prompt for one resume. The field list
// comes from schema; the resume text is appended verbatim.
func BuildPrompt(schema Schema, resumeText string) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n")
	for _, f := range schema.Fields {
		sb.WriteString("- ")
		sb.WriteString(describeField(f))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(promptRules)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Use these top-level keys: %s.\n", strings.Join(schema.Names(), ", ")))
	sb.WriteString("\nResume Text:\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n")
	return sb.String()
}

func describeField(f Field) string {
	if f.Kind != KindObjectList {
		if f.Note != "" {
			return f.Label + ": " + f.Note
		}
		return f.Label
	}
	desc := fmt.Sprintf("%s: Extract all %s. Each entry should be an object with the following keys: %s.",
		f.Label, strings.ToLower(f.Label), joinKeys(f.Keys))
	if f.Note != "" {
		desc += " " + f.Note
	}
	return desc
}

// joinKeys renders "a, b, and c".
func joinKeys(keys []string) string {
	switch len(keys) {
	case 0:
		return ""
	case 1:
		return keys[0]
	case 2:
		return keys[0] + " and " + keys[1]
	}
	return strings.Join(keys[:len(keys)-1], ", ") + ", and " + keys[len(keys)-1]
}
