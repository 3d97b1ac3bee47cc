package render

import (
	"bytes"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
)

var bodyClose = []byte("</body>")

// InjectBeforeBodyClose inserts snippet immediately before the last </body>
// tag of an HTML page. The interactive renderer uses it for the collapse
// script and the preview server for its reload script.
func InjectBeforeBodyClose(page []byte, snippet []byte) ([]byte, error) {
	pos := bytes.LastIndex(page, bodyClose)
	if pos == -1 {
		return nil, errors.New(errors.ErrCodeRender, "no </body> tag in page")
	}

	out := make([]byte, 0, len(page)+len(snippet))
	out = append(out, page[:pos]...)
	out = append(out, snippet...)
	out = append(out, page[pos:]...)
	return out, nil
}
