package serrors_test

import (
	"errors"
	"fmt"
	"mwasens/pkg/serrors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrBadInput,
		serrors.ErrMissingField,
		serrors.ErrNotFound,
		serrors.ErrUnavailable,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("invalid syntax")

	e1 := serrors.With(serrors.ErrBadInput, "could not parse frequency %q", "abc")
	require.Equal(t, `could not parse frequency "abc"`, e1.Error())

	e2 := serrors.Wrap(serrors.ErrBadInput, cause, "could not parse channel")
	require.Equal(t, "could not parse channel: invalid syntax", e2.Error())

	e3 := serrors.With(serrors.ErrMissingField, "")
	require.Equal(t, "MISSING_FIELD", e3.Error())
}

func TestIsMatchesKindAndCause(t *testing.T) {
	_, cause := strconv.Atoi("x")
	e := serrors.Wrap(serrors.ErrBadInput, cause, "delays")

	require.ErrorIs(t, e, serrors.ErrBadInput)
	require.ErrorIs(t, e, strconv.ErrSyntax)
	require.NotErrorIs(t, e, serrors.ErrNotFound)
}

func TestAsExtractsKindAndCause(t *testing.T) {
	_, cause := strconv.ParseFloat("1.2.3", 64)
	e := serrors.Wrap(serrors.ErrBadInput, cause, "frequency")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrBadInput, k)

	var numErr *strconv.NumError
	require.ErrorAs(t, e, &numErr)
	require.Equal(t, "1.2.3", numErr.Num)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("could not resolve observation: %w",
		serrors.With(serrors.ErrMissingField, "DELAYS not in header"))
	require.Equal(t, serrors.ErrMissingField, serrors.KindOf(wrapped))
	require.Nil(t, serrors.KindOf(errors.New("plain")))
}

func TestAccessors(t *testing.T) {
	cause := errors.New("connection refused")
	e := serrors.Wrap(serrors.ErrUnavailable, cause, "metadata service")
	require.Equal(t, serrors.ErrUnavailable, e.Kind())
	require.Equal(t, "metadata service", e.Message())
	require.Equal(t, cause, e.Cause())
}
