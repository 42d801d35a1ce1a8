package importer

import "fmt"

// Warnings collects row-level defects in encounter order. A warning never
// fails the import; the list rides back to the caller on the summary.
type Warnings struct {
	list []string
}

func (w *Warnings) Addf(format string, args ...any) {
	w.list = append(w.list, fmt.Sprintf(format, args...))
}

func (w *Warnings) Len() int {
	return len(w.list)
}

// List returns the accumulated warnings, never nil.
func (w *Warnings) List() []string {
	if w.list == nil {
		return []string{}
	}
	return w.list
}
