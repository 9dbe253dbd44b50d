package domain

import (
	"path/filepath"
	"strings"
)

// genericContentType is the catch-all type some clients report for
// anything they cannot identify. It is explicitly distrusted.
const genericContentType = "application/octet-stream"

// defaultMIMEType is the fallback when nothing better is known. Textbook
// uploads are overwhelmingly PDFs, so an unidentified file is treated as one.
const defaultMIMEType = "application/pdf"

// mimeByExtension maps the file extensions the indexing backend accepts to
// their MIME types. Extension is the most reliable signal for textbook
// formats, so it takes priority over the client-reported type.
var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".html": "text/html",
	".htm":  "text/html",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".csv":  "text/csv",
}

// ResolveMIME returns the MIME type to submit for fileName. It is total:
// extension lookup first, then the reported type when present and not the
// generic catch-all, then the PDF default.
func ResolveMIME(fileName, reportedType string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if mt, ok := mimeByExtension[ext]; ok {
		return mt
	}
	if reportedType != "" && reportedType != genericContentType {
		return reportedType
	}
	return defaultMIMEType
}
