package siteglean_test

import (
	"errors"
	"testing"

	"github.com/siteglean/siteglean"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := siteglean.Errorf(siteglean.EINVALID, "root URL %q is not http(s)", "ftp://x")

	assert.Equal(t, siteglean.EINVALID, siteglean.ErrorCode(err))
	assert.Equal(t, "root URL \"ftp://x\" is not http(s)", siteglean.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, siteglean.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, siteglean.EINTERNAL, siteglean.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, siteglean.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", siteglean.ErrorMessage(errors.New("boom")))
}
