package usecases

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"

	domainerrors "auto-concierge.backend/internal/domain/errors"
)

// UploadSignature is everything a browser needs for a signed direct upload
type UploadSignature struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
}

// MediaUsecase signs Cloudinary direct-upload requests so the API secret
// never reaches the browser
type MediaUsecase struct {
	cloudName    string
	apiKey       string
	apiSecret    string
	uploadFolder string

	now func() time.Time
}

// NewMediaUsecase creates a new media usecase
func NewMediaUsecase(cloudName, apiKey, apiSecret, uploadFolder string) *MediaUsecase {
	return &MediaUsecase{
		cloudName:    cloudName,
		apiKey:       apiKey,
		apiSecret:    apiSecret,
		uploadFolder: uploadFolder,
		now:          time.Now,
	}
}

// SignUpload produces a signed parameter set scoped to the dealer's folder
func (u *MediaUsecase) SignUpload(dealerID string) (*UploadSignature, error) {
	if u.cloudName == "" || u.apiKey == "" || u.apiSecret == "" {
		return nil, domainerrors.NewAppError(503, domainerrors.CodeInternal, "media uploads are not configured", nil)
	}

	timestamp := u.now().Unix()
	folder := fmt.Sprintf("%s/%s", u.uploadFolder, dealerID)

	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	params.Set("folder", folder)

	signature, err := api.SignParameters(params, u.apiSecret)
	if err != nil {
		return nil, err
	}

	return &UploadSignature{
		CloudName: u.cloudName,
		APIKey:    u.apiKey,
		Timestamp: timestamp,
		Folder:    folder,
		Signature: signature,
	}, nil
}
