package sitegen

import "strings"

// FieldMap is the flat key->value dictionary used to fill template
// placeholders. Keys are UPPER_SNAKE; values are already final strings.
type FieldMap map[string]string

// Substitute replaces every occurrence of {{KEY}} in the template text with
// the corresponding FieldMap value for each key present in the map. Keys
// with empty values blank the token out. Tokens whose key is not in the map
// are left verbatim, so a half-filled template stays inspectable instead of
// silently losing markup.
func Substitute(template string, fields FieldMap) string {
	result := template
	for key, value := range fields {
		token := "{{" + strings.ToUpper(key) + "}}"
		result = strings.ReplaceAll(result, token, value)
	}
	return result
}
