package store

// MockPriorityStore is an in-memory Repository for tests.
type MockPriorityStore struct {
	Doc *PriorityFile

	LoadError error
	SaveError error
	Saved     []*PriorityFile
}

// Load returns a copy of the stored document.
func (m *MockPriorityStore) Load() (*PriorityFile, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Doc == nil {
		return &PriorityFile{Priorities: map[string]int{}}, nil
	}
	out := &PriorityFile{Priorities: make(map[string]int, len(m.Doc.Priorities))}
	for k, v := range m.Doc.Priorities {
		out.Priorities[k] = v
	}
	if m.Doc.Aliases != nil {
		out.Aliases = make(map[string]string, len(m.Doc.Aliases))
		for k, v := range m.Doc.Aliases {
			out.Aliases[k] = v
		}
	}
	return out, nil
}

// Save records doc.
func (m *MockPriorityStore) Save(doc *PriorityFile) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Saved = append(m.Saved, doc)
	m.Doc = doc
	return nil
}

var (
	_ Repository = (*PriorityStore)(nil)
	_ Repository = (*MockPriorityStore)(nil)
)
