package shared

import "strings"

// ImageAction tags one image operation inside an update command.
type ImageAction string

// Canonical image actions.
const (
	ImageActionCreate ImageAction = "create"
	ImageActionUpdate ImageAction = "update"
	ImageActionPass   ImageAction = "pass"
	ImageActionDelete ImageAction = "delete"
)

// imageActionAliases maps legacy tag names onto the canonical set.
var imageActionAliases = map[string]ImageAction{
	"create":  ImageActionCreate,
	"add":     ImageActionCreate,
	"new":     ImageActionCreate,
	"update":  ImageActionUpdate,
	"replace": ImageActionUpdate,
	"change":  ImageActionUpdate,
	"pass":    ImageActionPass,
	"keep":    ImageActionPass,
	"skip":    ImageActionPass,
	"delete":  ImageActionDelete,
	"remove":  ImageActionDelete,
	"del":     ImageActionDelete,
}

// NormalizeImageAction resolves an action tag (including legacy aliases) to
// its canonical form. The boolean reports whether the tag was recognized.
func NormalizeImageAction(tag string) (ImageAction, bool) {
	action, ok := imageActionAliases[strings.ToLower(strings.TrimSpace(tag))]
	return action, ok
}
