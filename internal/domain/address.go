package domain

type Address struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// FirstMissingField returns the name of the first empty required field,
// checked in display order, or "" if the address is complete. Line2 is optional.
func (a Address) FirstMissingField() string {
	checks := []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"line1", a.Line1},
		{"city", a.City},
		{"state", a.State},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
		{"phone", a.Phone},
	}
	for _, c := range checks {
		if c.value == "" {
			return c.name
		}
	}
	return ""
}
