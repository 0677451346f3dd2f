package http

import (
	"io/fs"
	"net/http"
	"strings"
)

// Uploads serves files under root read-only. Directories and dot-prefixed
// names (including in-flight temp files) answer 404.
func Uploads(root string) http.Handler {
	return http.FileServer(uploadsFS{http.Dir(root)})
}

type uploadsFS struct {
	fs http.FileSystem
}

func (u uploadsFS) Open(name string) (http.File, error) {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return nil, fs.ErrNotExist
		}
	}
	f, err := u.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
