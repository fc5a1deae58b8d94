package components

import (
	"io"

	"github.com/a-h/templ"
)

// HTMLWriter writes markup and remembers the first write error
type HTMLWriter struct {
	w   io.Writer
	err error
}

func NewHTMLWriter(w io.Writer) *HTMLWriter {
	return &HTMLWriter{w: w}
}

// Raw writes trusted markup as is
func (h *HTMLWriter) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes escaped text
func (h *HTMLWriter) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped
func (h *HTMLWriter) Attr(name, value string) {
	h.Raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (h *HTMLWriter) Err() error {
	return h.err
}
