package directory_test

import (
	"net/http"
	"testing"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/directory"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestErrEmployeeNotFound_MapsToNotFound(t *testing.T) {
	httpErr := apperror.ToHTTP(directory.ErrEmployeeNotFound)

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
	assert.Equal(t, "employee not found in directory", httpErr.Message)
}
