package renderer

import (
	"net/http"

	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

var r = New()

func New() *render.Render {
	return render.New(render.Options{
		UnEscapeHTML: true,
	})
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	if err := r.JSON(w, status, v); err != nil {
		logrus.WithError(err).Error("failed to render JSON response")
	}
}

// Error writes err as {category, message, details}. Errors that are not
// *apperror.Error are reported as internal without leaking their text.
func Error(w http.ResponseWriter, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal("internal server error", err)
	}
	body := apperror.Error{
		Category: appErr.Category,
		Message:  appErr.Message,
		Details:  appErr.Details,
	}
	if appErr.Category == apperror.CategoryInternal {
		body.Message = "internal server error"
	}
	JSON(w, apperror.HTTPStatus(appErr.Category), body)
}
