package preset

// Record is one named preset: the values for the four recognized
// environment variables. Name is the unique key; the other fields may be
// empty, and empty means "configured as empty", not "unset".
type Record struct {
	Name           string `json:"name"`
	AuthToken      string `json:"auth_token"`
	BaseURL        string `json:"base_url"`
	Model          string `json:"model"`
	SmallFastModel string `json:"small_fast_model"`
}

// Collection is an ordered list of records. Insertion order is display
// order; names are unique and case-sensitive.
type Collection []Record

// Find returns the record with the given name, exact match.
func (c Collection) Find(name string) (Record, bool) {
	for _, r := range c {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

func (c Collection) index(name string) int {
	for i, r := range c {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the preset names in collection order.
func (c Collection) Names() []string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name
	}
	return names
}
