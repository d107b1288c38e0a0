package report

import "os"

// writeText creates or truncates the file with the given content.
func writeText(path, text string) error {
	return os.WriteFile(path, []byte(text), 0644)
}

// appendText appends to the file, opening and closing it per call so
// no handle stays open across a deep traversal.
func appendText(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
