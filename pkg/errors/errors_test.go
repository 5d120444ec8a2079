package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCodeOf(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeInternal, "failed to list faqs", cause)
	require.Equal(t, "failed to list faqs: connection refused", err.Error())
	require.ErrorIs(t, err, cause)
	require.True(t, IsCode(fmt.Errorf("list: %w", err), CodeInternal))

	notFound := Wrap(CodeNotFound, "faq 3 not found", nil)
	require.Equal(t, "faq 3 not found", notFound.Error())
	require.Equal(t, CodeNotFound, CodeOf(notFound))
	require.Empty(t, CodeOf(cause))
	require.Empty(t, CodeOf(nil))
}
