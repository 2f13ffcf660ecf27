package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customError struct {
	msg string
}

func (err customError) Error() string {
	return err.msg
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.NoError(t, errors.New(nil))

	err := errors.New("something happened")
	require.Error(t, err)
	assert.Equal(t, "something happened", err.Error())
	assert.True(t, errors.ContainsStackTrace(err))

	wrapped := errors.New(customError{msg: "custom"})

	var target customError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "custom", target.msg)

	// An error that already has a stack trace is returned as is.
	assert.Same(t, err, errors.New(err))
}

func TestErrorfKeepsWrappedError(t *testing.T) {
	t.Parallel()

	sentinel := stderrors.New("sentinel")
	err := errors.Errorf("listing failed: %w", sentinel)

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "listing failed: sentinel", err.Error())
	assert.NotEmpty(t, errors.ErrorStack(err))
}

func TestJoinAndAs(t *testing.T) {
	t.Parallel()

	require.NoError(t, errors.Join(nil, nil))

	err := errors.Join(nil, stderrors.New("copy failed"), errors.New(customError{msg: "missing source"}))
	require.Error(t, err)

	var target customError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "missing source", target.msg)
	assert.Contains(t, err.Error(), "copy failed")
}

func TestMultiError(t *testing.T) {
	t.Parallel()

	var errs *errors.MultiError

	require.NoError(t, errs.ErrorOrNil())

	errs = errs.Append(stderrors.New("first"))
	errs = errs.Append(stderrors.New("second"))

	err := errs.ErrorOrNil()
	require.Error(t, err)
	assert.Equal(t, 2, errs.Len())
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "* first")
	assert.Contains(t, err.Error(), "* second")
}

func TestRecover(t *testing.T) {
	t.Parallel()

	var recovered error

	func() {
		defer errors.Recover(func(cause error) {
			recovered = cause
		})

		panic("boom")
	}()

	require.Error(t, recovered)
	assert.Equal(t, "boom", recovered.Error())
}
