package hospitals

import (
	"strings"

	"github.com/goliatone/go-regflow/pkg/model"
)

// Field returns the free-text hospital field wired to fetch suggestions from
// the component endpoint mounted under baseURL. The endpoint lands in the
// field metadata under model.MetadataOptionsURL, where the TUI runner looks.
func Field(baseURL string, fns ...OptionFn) model.Field {
	schema := model.RegistrationFreeText()
	field, _ := schema.Field("hospital")

	url := strings.TrimRight(baseURL, "/") + MountPath("", fns...)
	if field.Metadata == nil {
		field.Metadata = map[string]string{}
	}
	field.Metadata[model.MetadataOptionsURL] = url
	return field
}
