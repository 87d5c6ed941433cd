package spreadsheet

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidKey is returned for keys without a file key or with a malformed gid.
var ErrInvalidKey = errors.New("invalid spreadsheet key")

// BaseURL is the spreadsheet host prefix used for display and export URLs.
const BaseURL = "https://docs.google.com/spreadsheets/d/"

// Key identifies one tab of one spreadsheet file.
type Key struct {
	FileKey string
	GID     string
}

// ParseKey accepts `<fileKey>`, `<fileKey>?gid=<n>`, `<fileKey>#gid=<n>` or a
// full spreadsheet URL.
func ParseKey(raw string) (Key, error) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "/spreadsheets/d/"); i >= 0 {
		s = s[i+len("/spreadsheets/d/"):]
		if u, err := url.Parse("x://h/" + s); err == nil {
			file, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
			gid := u.Query().Get("gid")
			if frag, ok := strings.CutPrefix(u.Fragment, "gid="); ok {
				gid = frag
			}
			return newKey(file, gid)
		}
	}

	file, gid := s, ""
	for _, sep := range []string{"?gid=", "#gid="} {
		if before, after, ok := strings.Cut(s, sep); ok {
			file, gid = before, after
			break
		}
	}
	return newKey(file, gid)
}

func newKey(file, gid string) (Key, error) {
	file = strings.TrimSpace(file)
	gid = strings.TrimSpace(gid)
	if file == "" || strings.ContainsAny(file, "/?#& ") {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, file)
	}
	if gid == "" {
		gid = "0"
	}
	if _, err := strconv.ParseUint(gid, 10, 64); err != nil {
		return Key{}, fmt.Errorf("%w: gid %q", ErrInvalidKey, gid)
	}
	return Key{FileKey: file, GID: gid}, nil
}

// MustParseKey is ParseKey for constants and tests.
func MustParseKey(raw string) Key {
	k, err := ParseKey(raw)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the canonical key form.
func (k Key) String() string {
	if k.GID == "" || k.GID == "0" {
		return k.FileKey
	}
	return k.FileKey + "?gid=" + k.GID
}

// URL is the human-facing link to the tab.
func (k Key) URL() string {
	return BaseURL + k.FileKey + "/edit#gid=" + k.gid()
}

// ExportURL is the CSV export link under base (BaseURL when empty).
func (k Key) ExportURL(base string) string {
	if base == "" {
		base = BaseURL
	}
	return strings.TrimSuffix(base, "/") + "/" + k.FileKey + "/export?format=csv&gid=" + k.gid()
}

// SnapshotName is the object name of the mirrored snapshot.
func (k Key) SnapshotName(prefix string) string {
	return prefix + k.FileKey + "/" + k.gid() + ".csv"
}

func (k Key) gid() string {
	if k.GID == "" {
		return "0"
	}
	return k.GID
}
