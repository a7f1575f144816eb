package render

import (
	"fmt"
	"html"
	"io"
	"sort"
)

// WriteMarkup serialises r as tag markup. Attributes are written in sorted
// order so output is deterministic; text is HTML escaped while Raw content and
// Tag delimiters are written as-is.
func WriteMarkup(w io.Writer, r Result) error {
	for _, fragment := range r {
		if err := writeFragment(w, fragment); err != nil {
			return err
		}
	}
	return nil
}

func writeFragment(w io.Writer, fragment Fragment) error {
	switch f := fragment.(type) {
	case nil:
		return nil
	case Result:
		return WriteMarkup(w, f)
	case Text:
		_, err := io.WriteString(w, html.EscapeString(string(f)))
		return err
	case Raw:
		_, err := io.WriteString(w, string(f))
		return err
	case Tag:
		if _, err := io.WriteString(w, f.Open); err != nil {
			return err
		}
		if err := WriteMarkup(w, f.Children); err != nil {
			return err
		}
		_, err := io.WriteString(w, f.Close)
		return err
	case Element:
		return writeElement(w, f)
	default:
		return fmt.Errorf("render: unsupported fragment %T", fragment)
	}
}

func writeElement(w io.Writer, el Element) error {
	if el.Name == "" {
		return WriteMarkup(w, el.Children)
	}
	if _, err := fmt.Fprintf(w, "<%s", el.Name); err != nil {
		return err
	}
	for _, key := range sortedKeys(el.Attributes) {
		if _, err := fmt.Fprintf(w, " %s=\"%s\"", key, html.EscapeString(el.Attributes[key])); err != nil {
			return err
		}
	}
	if len(el.Children) == 0 {
		_, err := io.WriteString(w, " />")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if err := WriteMarkup(w, el.Children); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>", el.Name)
	return err
}

func sortedKeys(attrs map[string]string) []string {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for key, value := range attrs {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
