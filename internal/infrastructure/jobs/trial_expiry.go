package jobs

import (
	"context"
	"log"
	"time"

	"auto-concierge.backend/internal/domain/entities"
	"auto-concierge.backend/internal/domain/repositories"
	"auto-concierge.backend/pkg/mailer"
)

// TrialExpiryJob pauses dealers whose trial ran out without the subscription
// ever becoming active
type TrialExpiryJob struct {
	dealers  repositories.DealerRepository
	mail     mailer.Mailer
	interval time.Duration
	stop     chan struct{}
}

func NewTrialExpiryJob(dealers repositories.DealerRepository, mail mailer.Mailer) *TrialExpiryJob {
	return &TrialExpiryJob{
		dealers:  dealers,
		mail:     mail,
		interval: 1 * time.Hour, // Check every hour
		stop:     make(chan struct{}),
	}
}

func (j *TrialExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting trial expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Trial expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Trial expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredTrials(ctx)
		}
	}
}

func (j *TrialExpiryJob) Stop() {
	close(j.stop)
}

func (j *TrialExpiryJob) processExpiredTrials(ctx context.Context) {
	expired, err := j.dealers.ListExpiredTrials(ctx, 100)
	if err != nil {
		log.Printf("❌ Error fetching expired trials: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	log.Printf("🔄 Pausing %d dealers with expired trials...", len(expired))

	paused := 0
	for _, dealer := range expired {
		dealer.Status = entities.DealerStatusPaused
		if err := j.dealers.Update(ctx, dealer); err != nil {
			log.Printf("❌ Error pausing dealer %s: %v", dealer.DealerID, err)
			continue
		}
		paused++

		if j.mail != nil && dealer.Email.Valid {
			if err := j.mail.SendSuspensionEmail(dealer.Email.String, dealer.DealerID); err != nil {
				log.Printf("❌ Error sending suspension email to %s: %v", dealer.DealerID, err)
			}
		}
	}

	log.Printf("✅ Paused %d dealers", paused)
}
