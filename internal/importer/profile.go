package importer

import "strings"

// headerNames lists the column titles recognised for each field, lowercased.
// Bank exports in English and Portuguese are covered.
var headerNames = struct {
	date, description, amount, category []string
}{
	date:        []string{"date", "transaction date", "posted", "posting date", "data", "data mov."},
	description: []string{"description", "details", "memo", "payee", "name", "descrição", "descricao"},
	amount:      []string{"amount", "value", "sum", "montante", "movimento"},
	category:    []string{"category", "categoria"},
}

// DetectMapping finds every field by its header title. It reports false
// unless all four fields are present.
func DetectMapping(header []string) (Mapping, bool) {
	cols := make(map[string]int, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, seen := cols[name]; name != "" && !seen {
			cols[name] = i
		}
	}

	find := func(names []string) (int, bool) {
		for _, n := range names {
			if i, ok := cols[n]; ok {
				return i, true
			}
		}

		return 0, false
	}

	var (
		m  Mapping
		ok [4]bool
	)

	m.Date, ok[0] = find(headerNames.date)
	m.Description, ok[1] = find(headerNames.description)
	m.Amount, ok[2] = find(headerNames.amount)
	m.Category, ok[3] = find(headerNames.category)

	for _, found := range ok {
		if !found {
			return Mapping{}, false
		}
	}

	return m, true
}
