package report

// HTML fragments composing a report document, in the order they are
// appended: header, files table, directories table, symlinks table,
// footer. Names are escaped before substitution.
const (
	templateHeader = `<html>
<head><title>%s</title></head>
<body>
<h1>%s</h1>
`

	templateFilesTableHeader = `<h2>Files</h2>
<table border="1">
<tr><th>Name</th><th>Size</th></tr>
`
	templateFilesTableRow = "<tr><td>%s</td><td>%s</td></tr>\n"

	templateDirsTableHeader = `<h2>Subdirectories</h2>
<table border="1">
<tr><th>Name</th><th>Size</th></tr>
`
	templateDirsTableRow = "<tr><td><a href=\"%s\">%s</a></td><td>%s</td></tr>\n"

	templateSymlinksTableHeader = `<h2>Symlinks</h2>
<table border="1">
<tr><th>Name</th><th>Resolves to</th></tr>
`
	templateSymlinksTableRow = "<tr><td>%s</td><td>%s</td></tr>\n"

	templateTableClose = "</table>\n"

	templateFooter = `<p><b>Total size: %s</b></p>
</body>
</html>
`

	placeholderNoFiles    = "No files found.\n"
	placeholderNoDirs     = "No subdirectories found.\n"
	placeholderDepthLimit = "Recursion depth limit reached!\n"
	placeholderNoSymlinks = "No symlinks found.\n"

	markerSelfReference = "<b>This was the original destination path!</b>\n"
)
