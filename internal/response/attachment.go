package response

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Attachment writes data as a download. The ASCII filename is the fallback
// for clients that ignore the RFC 5987 filename* parameter.
func Attachment(w http.ResponseWriter, contentType, asciiName, name string, data []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", ContentDisposition(asciiName, name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(data)
	return err
}

func ContentDisposition(asciiName, name string) string {
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, asciiName, encodeRFC5987(name))
}

func encodeRFC5987(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
