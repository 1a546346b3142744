package media

import "context"

// Uploader stores images with an external host and returns stable URLs.
// Images arrive as data URIs or remote URLs, the way clients submit them.
type Uploader interface {
	Upload(ctx context.Context, image string) (string, error)
	Destroy(ctx context.Context, imageURL string) error
}
