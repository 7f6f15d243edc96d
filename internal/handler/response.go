package handler

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/bizmanager-api/pkg/errors"
)

// RespondError writes err as the JSON error body for its kind. Errors that
// are not application errors are logged and reported as internal.
func RespondError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal(err)
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("path", c.FullPath()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request failed")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, appErr.Body())
}

// BindJSON decodes the request body into obj. An empty body decodes to the
// zero value so partial updates may send nothing. On failure a 400 has
// already been written and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || stderrors.Is(err, io.EOF) {
		return true
	}

	RespondError(c, errors.Validation(bindErrors(err)))
	return false
}

func bindErrors(err error) errors.FieldErrors {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return errors.FieldErrors{typeErr.Field: {fmt.Sprintf("Expected %s.", typeErr.Type.String())}}
	}

	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.FieldErrors{errors.MessageKey: {fmt.Sprintf("JSON parse error - %s", syntaxErr.Error())}}
	}

	return errors.FieldErrors{errors.MessageKey: {err.Error()}}
}

// ParseID reads the :id path parameter. Malformed ids are answered exactly
// like unknown ones.
func ParseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, errors.NotFound("resource", err))
		return uuid.Nil, false
	}
	return id, true
}
