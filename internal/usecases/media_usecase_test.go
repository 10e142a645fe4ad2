package usecases_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/usecases"
)

func TestMediaUsecase_SignUpload(t *testing.T) {
	uc := usecases.NewMediaUsecase("demo-cloud", "key123", "shhh", "dealers")

	sig, err := uc.SignUpload("kingston-motors")
	require.NoError(t, err)
	require.Equal(t, "demo-cloud", sig.CloudName)
	require.Equal(t, "key123", sig.APIKey)
	require.Equal(t, "dealers/kingston-motors", sig.Folder)
	require.NotZero(t, sig.Timestamp)
	require.NotEmpty(t, sig.Signature)

	// same inputs at the same timestamp sign identically
	sig2, err := uc.SignUpload("kingston-motors")
	require.NoError(t, err)
	if sig2.Timestamp == sig.Timestamp {
		require.Equal(t, sig.Signature, sig2.Signature)
	}
}

func TestMediaUsecase_SignUploadUnconfigured(t *testing.T) {
	uc := usecases.NewMediaUsecase("", "", "", "dealers")

	_, err := uc.SignUpload("kingston-motors")
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 503, appErr.Status)
}
