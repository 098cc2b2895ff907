package domain

import "strings"

// NormalizePhone приводит телефон к единому формату "+7 (XXX) XXX-XX-XX"
// Ведущая 8 заменяется на 7, отсутствующий код страны добавляется.
// Сопоставление клиентов при записи тренером идет по точному совпадению
// нормализованной строки
func NormalizePhone(input string) string {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if strings.HasPrefix(d, "8") {
		d = "7" + d[1:]
	}
	if !strings.HasPrefix(d, "7") {
		d = "7" + d
	}
	if len(d) > 11 {
		d = d[:11]
	}
	p := d[1:]

	var out strings.Builder
	out.WriteString("+7")
	if len(p) > 0 {
		out.WriteString(" (")
		out.WriteString(p[:min(3, len(p))])
	}
	if len(p) >= 3 {
		out.WriteString(")")
	}
	if len(p) > 3 {
		out.WriteString(" ")
		out.WriteString(p[3:min(6, len(p))])
	}
	if len(p) > 6 {
		out.WriteString("-")
		out.WriteString(p[6:min(8, len(p))])
	}
	if len(p) > 8 {
		out.WriteString("-")
		out.WriteString(p[8:min(10, len(p))])
	}
	return out.String()
}
