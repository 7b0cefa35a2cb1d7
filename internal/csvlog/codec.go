package csvlog

import "strings"

// EncodeRow renders one record as a CSV row without the trailing newline.
// Columns flagged in quoted are always wrapped in double quotes with inner
// quotes doubled. An unflagged value that happens to contain a delimiter or
// quote is quote-wrapped as well, so the row stays parseable; well-formed
// input never triggers this.
func EncodeRow(values []string, quoted []bool) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if quoted[i] || strings.ContainsAny(v, `",`) {
			parts[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		} else {
			parts[i] = v
		}
	}
	return strings.Join(parts, ",")
}

// DecodeRow parses one CSV row produced by EncodeRow. The scan walks the
// row character by character, toggling an in-quotes flag on each quote and
// splitting on commas only while outside quotes. A doubled quote inside a
// quoted field decodes to one literal quote, so every field round-trips
// exactly. Field values are trimmed of surrounding whitespace.
func DecodeRow(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}
