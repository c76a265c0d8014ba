package resource

import "strings"

// CacheKey identifies one distinct fetch by its contributing input values
type CacheKey string

const keySeparator = ":"

// Separators and escapes inside a field are escaped so that distinct field
// tuples always produce distinct keys.
var keyEscaper = strings.NewReplacer(`\`, `\\`, keySeparator, `\`+keySeparator)

// DeriveKey joins the resource name and the field values in the given order.
// Absent optional fields must be passed as the empty string.
func DeriveKey(resource string, fields ...string) CacheKey {
	var sb strings.Builder
	sb.WriteString(keyEscaper.Replace(resource))
	for _, f := range fields {
		sb.WriteString(keySeparator)
		sb.WriteString(keyEscaper.Replace(f))
	}
	return CacheKey(sb.String())
}
