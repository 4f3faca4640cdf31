package paramq

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// constants for request sources
const (
	ContentTypeApplicationJSON = "application/json"
)

// RequestSourceOpts selects which parts of a request feed the source map.
type RequestSourceOpts struct {
	Headers []string // header names copied under their own name
	Cookies []string // cookie names copied under their own name
	// SkipBody disables reading a JSON body.
	SkipBody bool
}

// SourceFromRequest flattens a request into a source map. Query parameters
// come first, then the selected headers and cookies, then the top level
// members of a JSON body; later entries win on name clashes. The body is
// read only when the content type is application/json.
func SourceFromRequest(r *http.Request, opts RequestSourceOpts) (map[string]any, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil request", ErrInvalidSourceContentType)
	}

	source := map[string]any{}
	if r.URL != nil {
		mergeValues(source, r.URL.Query())
	}

	for _, name := range opts.Headers {
		if v := r.Header.Get(name); v != "" {
			source[name] = v
		}
	}
	for _, name := range opts.Cookies {
		if c, err := r.Cookie(name); err == nil {
			source[name] = c.Value
		}
	}

	if opts.SkipBody || r.Body == nil || r.ContentLength == 0 {
		return source, nil
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != ContentTypeApplicationJSON {
		return source, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) == 0 {
		return source, nil
	}
	fromBody, err := SourceFromJSON(body)
	if err != nil {
		return nil, err
	}
	for k, v := range fromBody {
		source[k] = v
	}
	return source, nil
}

// SourceFromJSON reads the top level members of a JSON object. Numbers
// become float64, nested objects map[string]any and arrays []any; JSON null
// members are kept as nil and therefore count as absent.
func SourceFromJSON(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidSourceContentType)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: JSON source must be an object", ErrInvalidSourceContentType)
	}

	source := map[string]any{}
	doc.ForEach(func(key, value gjson.Result) bool {
		source[key.String()] = value.Value()
		return true
	})
	return source, nil
}

// SourceFromValues converts url.Values: single values become strings,
// repeated keys []string.
func SourceFromValues(values url.Values) map[string]any {
	source := make(map[string]any, len(values))
	mergeValues(source, values)
	return source
}

func mergeValues(dst map[string]any, values url.Values) {
	for key, vals := range values {
		switch len(vals) {
		case 0:
			continue
		case 1:
			dst[key] = vals[0]
		default:
			dst[key] = append([]string(nil), vals...)
		}
	}
}
