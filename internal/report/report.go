package report

import (
	"fmt"
	"html"
	"net/url"

	"github.com/dustin/go-humanize"
)

// Document is one HTML report page for one visited directory. The
// first write (Create or WriteHeader) truncates the file; every other
// operation appends. The file is never read back and no handle is held
// between operations.
type Document struct {
	path string
}

func New(path string) *Document {
	return &Document{path: path}
}

// Path returns the location of the underlying report file.
func (d *Document) Path() string {
	return d.path
}

// Create materializes the report file, empty. Listing failures and the
// self-reference guard can leave it in this state.
func (d *Document) Create() error {
	return writeText(d.path, "")
}

// WriteSelfReference replaces the document with the one-line marker
// emitted when the traversal reaches the original destination root.
func (d *Document) WriteSelfReference() error {
	return writeText(d.path, markerSelfReference)
}

func (d *Document) WriteHeader(dirName string) error {
	escaped := escapeHTML(dirName, false)
	return writeText(d.path, fmt.Sprintf(templateHeader, escaped, escaped))
}

func (d *Document) BeginFilesTable() error {
	return appendText(d.path, templateFilesTableHeader)
}

func (d *Document) FileRow(name string, size int64) error {
	row := fmt.Sprintf(templateFilesTableRow, escapeHTML(name, false), humanSize(size))
	return appendText(d.path, row)
}

func (d *Document) NoFiles() error {
	return appendText(d.path, placeholderNoFiles)
}

func (d *Document) BeginDirsTable() error {
	return appendText(d.path, templateDirsTableHeader)
}

// DirRow links to the subdirectory's own report page, which lives at
// <name>/<name>.html inside the mirror.
func (d *Document) DirRow(name string, size int64) error {
	urlName := escapeHTML(name, true)
	href := urlName + "/" + urlName + ".html"
	row := fmt.Sprintf(templateDirsTableRow, href, escapeHTML(name, false), humanSize(size))
	return appendText(d.path, row)
}

func (d *Document) NoDirs() error {
	return appendText(d.path, placeholderNoDirs)
}

func (d *Document) DepthLimit() error {
	return appendText(d.path, placeholderDepthLimit)
}

func (d *Document) BeginSymlinksTable() error {
	return appendText(d.path, templateSymlinksTableHeader)
}

func (d *Document) SymlinkRow(name, target string) error {
	row := fmt.Sprintf(templateSymlinksTableRow, escapeHTML(name, false), escapeHTML(target, false))
	return appendText(d.path, row)
}

func (d *Document) NoSymlinks() error {
	return appendText(d.path, placeholderNoSymlinks)
}

func (d *Document) EndTable() error {
	return appendText(d.path, templateTableClose)
}

func (d *Document) WriteFooter(total int64) error {
	return appendText(d.path, fmt.Sprintf(templateFooter, humanSize(total)))
}

// escapeHTML escapes text for embedding in a document; with forURL set
// the result is safe to use as a path segment in an href.
func escapeHTML(text string, forURL bool) string {
	if forURL {
		return url.PathEscape(text)
	}
	return html.EscapeString(text)
}

func humanSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}
