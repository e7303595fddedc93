package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

// Locator maps an upload name to a URL outside this service.
type Locator interface {
	ObjectURL(name string) string
}

// UploadHandler serves /uploads/<name> from Dir, or redirects to Remote
// when uploads live in a bucket.
type UploadHandler struct {
	Dir    string
	Remote Locator
}

func NewUploadHandler(dir string, remote Locator) *UploadHandler {
	return &UploadHandler{Dir: dir, Remote: remote}
}

func (h *UploadHandler) Serve(c *gin.Context) {
	name := path.Base(c.Param("filepath"))
	if name == "/" || name == "." || name == ".." {
		response.Abort(c, http.StatusNotFound, "file not found", nil)
		return
	}
	if h.Remote != nil {
		c.Redirect(http.StatusFound, h.Remote.ObjectURL(name))
		return
	}

	p := filepath.Join(h.Dir, name)
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		response.Abort(c, http.StatusNotFound, "file not found", nil)
		return
	}
	if err != nil {
		response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	c.File(p)
}
