package models

import "strings"

// PriorityTable ranks departments; the highest ranked department seen for a
// product wins. Keys are stored upper-cased and trimmed.
type PriorityTable map[string]int

// DefaultPriorities returns a fresh copy of the built-in table.
func DefaultPriorities() PriorityTable {
	return PriorityTable{
		"BEBIDAS SIN ALCOHOL":         100,
		"ADITIVOS PARA LAVADOS":       100,
		"ALMACEN":                     100,
		"ACEITES":                     90,
		"BEBIDAS":                     50,
		"DESAYUNO":                    40,
		"LIMPIEZA Y CUIDADO PERSONAL": 30,
		"LIMPIEZA Y CUIDADO":          30,
		"ARROZ":                       30,
		"ENLATADOS":                   30,
		"ALIM VARIOS":                 30,
	}
}

// NewPriorityTable normalizes the keys of m into a new table.
func NewPriorityTable(m map[string]int) PriorityTable {
	t := make(PriorityTable, len(m))
	for k, v := range m {
		t[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return t
}

// Get returns the department's priority; unknown departments rank 0.
func (t PriorityTable) Get(department string) int {
	return t[strings.ToUpper(strings.TrimSpace(department))]
}
