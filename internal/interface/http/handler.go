package handlers

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

// bind decodes the body by content type. Validation happens in the services.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil {
		return apperror.ValidationDetails("invalid payload", validation.ToDetails(err))
	}
	return nil
}

// formImage returns the uploaded image in field, or nil when there is none.
// The caller must run the returned close func.
func formImage(c *gin.Context, field string) (*application.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, apperror.Validation(field, "cannot read uploaded file")
	}
	return uploadFrom(fh, f), func() { _ = f.Close() }, nil
}

func uploadFrom(fh *multipart.FileHeader, f multipart.File) *application.Upload {
	return &application.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
}

func fail(c *gin.Context, err error, logger *logrus.Logger) {
	response.Fail(c, err, logger)
}
