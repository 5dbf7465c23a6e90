package render

// Headings returns the heading blocks of the given level in order.
func (d Document) Headings(level int) []Heading {
	var out []Heading
	for _, b := range d.Blocks {
		if h, ok := b.(Heading); ok && h.Level == level {
			out = append(out, h)
		}
	}
	return out
}

// Tables returns every table in the document.
func (d Document) Tables() []Table {
	var out []Table
	for _, b := range d.Blocks {
		if t, ok := b.(Table); ok {
			out = append(out, t)
		}
	}
	return out
}
