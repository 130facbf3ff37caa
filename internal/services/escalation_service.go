package services

import (
	"context"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/twilio/twilio-go"

	"github.com/Prakash-Shridharan/handshake/internal/config"
	"github.com/Prakash-Shridharan/handshake/internal/constants"
	"github.com/Prakash-Shridharan/handshake/internal/ledger"
	"github.com/Prakash-Shridharan/handshake/internal/models"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

/*
EscalationService watches for emergency jobs that sit open with no bids and
alerts the operations on-call contact. Each job is alerted on at most once.
*/
type EscalationService struct {
	cfg            *config.Config
	ledger         *ledger.Ledger
	twilioClient   *twilio.RestClient
	sendgridClient *sendgrid.Client
}

func NewEscalationService(cfg *config.Config, l *ledger.Ledger) *EscalationService {
	twClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	sgClient := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	return &EscalationService{
		cfg:            cfg,
		ledger:         l,
		twilioClient:   twClient,
		sendgridClient: sgClient,
	}
}

// RunEscalationCheck scans open emergency jobs and alerts on any that have
// had zero bids for longer than the escalation window.
func (s *EscalationService) RunEscalationCheck(ctx context.Context) error {
	utils.Logger.Debug("Running emergency job escalation check...")

	nowUTC := time.Now().UTC()
	for _, job := range s.ledger.ListOpenJobs() {
		if job.Urgency != models.JobUrgencyEmergency {
			continue
		}
		if job.EscalatedAt != nil {
			continue
		}
		if nowUTC.Sub(job.CreatedAt) < constants.EmergencyEscalationAfter {
			continue
		}
		if len(s.ledger.ListBidsByJob(job.ID)) > 0 {
			continue
		}

		utils.Logger.Warnf("Emergency job %s open with no bids since %s, escalating", job.ID, job.CreatedAt)

		notifyOnCall(
			s.cfg.AppUrl,
			job,
			s.twilioClient,
			s.sendgridClient,
			s.cfg.LDFlag_TwilioFromPhone,
			s.cfg.LDFlag_SendgridFromEmail,
			s.cfg.OnCallPhone,
			s.cfg.OnCallEmail,
			s.cfg.OrganizationName,
			s.cfg.LDFlag_SendgridSandboxMode,
		)

		if err := s.ledger.MarkJobEscalated(job.ID, nowUTC); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to mark job %s escalated", job.ID)
		}
	}
	return nil
}
