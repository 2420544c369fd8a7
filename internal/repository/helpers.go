package repository

import (
	"net/url"

	"github.com/andy/clientdesk/internal/domain"
)

// itemPath builds "/<resource>/<id>" with the id escaped. Backend ids are
// opaque strings and may contain anything.
func itemPath(resource string, id domain.ID) string {
	return "/" + resource + "/" + url.PathEscape(id.String())
}
