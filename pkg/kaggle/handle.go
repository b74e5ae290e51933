package kaggle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Handle identifies a dataset on the hub: owner/slug with an optional version.
type Handle struct {
	Owner   string
	Slug    string
	Version int // 0 = latest
}

// ParseHandle parses "owner/slug" or "owner/slug/versions/N".
func ParseHandle(s string) (Handle, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "/"), "/")
	switch len(parts) {
	case 2:
	case 4:
		if parts[2] != "versions" {
			return Handle{}, eris.Errorf("kaggle: invalid handle %q (expected owner/slug/versions/N)", s)
		}
	default:
		return Handle{}, eris.Errorf("kaggle: invalid handle %q (expected owner/slug[/versions/N])", s)
	}

	h := Handle{Owner: parts[0], Slug: parts[1]}
	if h.Owner == "" || h.Slug == "" {
		return Handle{}, eris.Errorf("kaggle: invalid handle %q (empty owner or slug)", s)
	}

	if len(parts) == 4 {
		v, err := strconv.Atoi(parts[3])
		if err != nil || v <= 0 {
			return Handle{}, eris.Errorf("kaggle: invalid version %q in handle %q", parts[3], s)
		}
		h.Version = v
	}
	return h, nil
}

// String returns the canonical form of the handle.
func (h Handle) String() string {
	if h.Version > 0 {
		return fmt.Sprintf("%s/%s/versions/%d", h.Owner, h.Slug, h.Version)
	}
	return h.Owner + "/" + h.Slug
}
