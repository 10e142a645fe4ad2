package usecases

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/domain/repositories"
	"auto-concierge.backend/pkg/crypto"
	"auto-concierge.backend/pkg/logger"
	"auto-concierge.backend/pkg/mailer"
)

// StaleRequestHours is how old a "new" request must be to trigger an alert
const StaleRequestHours = 48

// AdminUsecase handles platform-operator business logic
type AdminUsecase struct {
	dealerRepo  repositories.DealerRepository
	vehicleRepo repositories.VehicleRepository
	requestRepo repositories.ViewingRequestRepository
	mail        mailer.Mailer
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	dealerRepo repositories.DealerRepository,
	vehicleRepo repositories.VehicleRepository,
	requestRepo repositories.ViewingRequestRepository,
	mail mailer.Mailer,
) *AdminUsecase {
	return &AdminUsecase{
		dealerRepo:  dealerRepo,
		vehicleRepo: vehicleRepo,
		requestRepo: requestRepo,
		mail:        mail,
	}
}

// CreateDealer provisions a dealer profile. When no passcode is supplied a
// one-time passcode is generated and returned exactly once; it is never
// stored in plaintext.
func (u *AdminUsecase) CreateDealer(ctx context.Context, input *entities.CreateDealerInput) (*entities.Dealer, string, error) {
	if !entities.IsValidDealerID(input.DealerID) {
		return nil, "", domainerrors.BadRequest("dealer id must match [A-Za-z0-9_-]{3,40}")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, "", domainerrors.BadRequest("name is required")
	}

	_, err := u.dealerRepo.GetByID(ctx, input.DealerID)
	if err == nil {
		return nil, "", domainerrors.Conflict("dealer already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, "", err
	}

	passcode := input.Passcode
	generated := ""
	if passcode == "" {
		passcode, err = crypto.GeneratePasscode()
		if err != nil {
			return nil, "", err
		}
		generated = passcode
	}

	hash, err := crypto.HashPasscode(passcode)
	if err != nil {
		return nil, "", err
	}

	referralCode, err := crypto.GenerateRandomToken(4)
	if err != nil {
		return nil, "", err
	}

	dealer := &entities.Dealer{
		DealerID:     input.DealerID,
		Name:         strings.TrimSpace(input.Name),
		Status:       entities.DealerStatusActive,
		WhatsApp:     optString(input.WhatsApp),
		Email:        optString(strings.TrimSpace(input.Email)),
		LogoURL:      optString(input.LogoURL),
		Plan:         optString(input.Plan),
		PasscodeHash: hash,
		ReferralCode: optString(referralCode),
		ReferredBy:   optString(input.ReferredBy),
	}

	if err := u.dealerRepo.Create(ctx, dealer); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, "", domainerrors.Conflict("dealer already exists")
		}
		return nil, "", err
	}

	if generated != "" && dealer.Email.Valid {
		go func(to, dealerID, passcode string) {
			if err := u.mail.SendWelcomeEmail(to, dealerID, passcode); err != nil {
				logger.Error(context.Background(), "failed to send welcome email", zap.String("dealerId", dealerID), zap.Error(err))
			}
		}(dealer.Email.String, dealer.DealerID, generated)
	}

	return dealer, generated, nil
}

// GetDealer loads one dealer profile
func (u *AdminUsecase) GetDealer(ctx context.Context, dealerID string) (*entities.Dealer, error) {
	dealer, err := u.dealerRepo.GetByID(ctx, dealerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("dealer not found")
		}
		return nil, err
	}
	return dealer, nil
}

// UpdateDealer applies a partial update to a dealer profile
func (u *AdminUsecase) UpdateDealer(ctx context.Context, dealerID string, input *entities.UpdateDealerInput) (*entities.Dealer, error) {
	dealer, err := u.GetDealer(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		switch entities.DealerStatus(*input.Status) {
		case entities.DealerStatusActive, entities.DealerStatusPaused:
			dealer.Status = entities.DealerStatus(*input.Status)
		default:
			return nil, domainerrors.BadRequest("invalid dealer status: " + *input.Status)
		}
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domainerrors.BadRequest("name cannot be empty")
		}
		dealer.Name = strings.TrimSpace(*input.Name)
	}
	if input.WhatsApp != nil {
		dealer.WhatsApp = optString(*input.WhatsApp)
	}
	if input.Email != nil {
		dealer.Email = optString(strings.TrimSpace(*input.Email))
	}
	if input.LogoURL != nil {
		dealer.LogoURL = optString(*input.LogoURL)
	}
	if input.Plan != nil {
		dealer.Plan = optString(*input.Plan)
	}

	if err := u.dealerRepo.Update(ctx, dealer); err != nil {
		return nil, err
	}
	return dealer, nil
}

// ListDealers lists dealers with optional status filter and search
func (u *AdminUsecase) ListDealers(ctx context.Context, status, search string) ([]*entities.Dealer, error) {
	if status != "" {
		switch entities.DealerStatus(status) {
		case entities.DealerStatusActive, entities.DealerStatusPaused:
		default:
			return nil, domainerrors.BadRequest("invalid dealer status: " + status)
		}
	}
	return u.dealerRepo.List(ctx, repositories.DealerFilter{Status: status, Search: search})
}

// ResetDealerPasscode regenerates a dealer's passcode and returns the
// plaintext exactly once
func (u *AdminUsecase) ResetDealerPasscode(ctx context.Context, dealerID string) (string, error) {
	if _, err := u.GetDealer(ctx, dealerID); err != nil {
		return "", err
	}

	passcode, err := crypto.GeneratePasscode()
	if err != nil {
		return "", err
	}
	hash, err := crypto.HashPasscode(passcode)
	if err != nil {
		return "", err
	}
	if err := u.dealerRepo.UpdatePasscode(ctx, dealerID, hash); err != nil {
		return "", err
	}
	return passcode, nil
}

// CheckAlerts emails every dealer sitting on stale "new" requests and
// returns how many alerts went out
func (u *AdminUsecase) CheckAlerts(ctx context.Context) (int, error) {
	counts, err := u.requestRepo.CountStaleNew(ctx, StaleRequestHours)
	if err != nil {
		return 0, err
	}

	sent := 0
	for dealerID, pending := range counts {
		dealer, err := u.dealerRepo.GetByID(ctx, dealerID)
		if err != nil {
			logger.Warn(ctx, "stale-request alert skipped", zap.String("dealerId", dealerID), zap.Error(err))
			continue
		}
		if !dealer.Email.Valid {
			continue
		}
		if err := u.mail.SendStaleRequestAlert(dealer.Email.String, dealerID, int(pending)); err != nil {
			logger.Error(ctx, "failed to send stale-request alert", zap.String("dealerId", dealerID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// ExportDealersCSV renders all dealer profiles as CSV
func (u *AdminUsecase) ExportDealersCSV(ctx context.Context) ([]byte, error) {
	dealers, err := u.dealerRepo.List(ctx, repositories.DealerFilter{})
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"dealerId", "name", "status", "whatsapp", "email", "plan", "subscriptionStatus", "trialEndsAt", "createdAt"}}
	for _, d := range dealers {
		trial := ""
		if d.TrialEndsAt.Valid {
			trial = d.TrialEndsAt.Time.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			d.DealerID, d.Name, string(d.Status), d.WhatsApp.String, d.Email.String,
			d.Plan.String, d.StripeSubscriptionStatus.String, trial,
			d.CreatedAt.Format(time.RFC3339),
		})
	}
	return writeCSV(rows)
}

// ExportVehiclesCSV renders all vehicles (archived included) as CSV
func (u *AdminUsecase) ExportVehiclesCSV(ctx context.Context) ([]byte, error) {
	vehicles, err := u.vehicleRepo.List(ctx, entities.VehicleFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"vehicleId", "dealerId", "title", "make", "model", "year", "price", "status", "availability", "archived", "createdAt"}}
	for _, v := range vehicles {
		rows = append(rows, []string{
			v.VehicleID, v.DealerID, v.Title, v.Make.String, v.Model.String,
			strconv.Itoa(v.Year.Int), strconv.FormatFloat(v.Price.Float64, 'f', 2, 64),
			string(v.Status), strconv.FormatBool(v.Availability), strconv.FormatBool(v.Archived),
			v.CreatedAt.Format(time.RFC3339),
		})
	}
	return writeCSV(rows)
}

// ExportRequestsCSV renders all viewing requests as CSV
func (u *AdminUsecase) ExportRequestsCSV(ctx context.Context) ([]byte, error) {
	requests, err := u.requestRepo.List(ctx, entities.RequestFilter{})
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"requestId", "dealerId", "vehicleId", "type", "status", "name", "phone", "email", "source", "createdAt"}}
	for _, r := range requests {
		rows = append(rows, []string{
			r.RequestID, r.DealerID, r.VehicleID.String, string(r.Type), string(r.Status),
			r.Name, r.Phone, r.Email.String, r.Source,
			r.CreatedAt.Format(time.RFC3339),
		})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
