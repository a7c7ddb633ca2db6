// Package jobs holds the background maintenance tasks of the chatbot.
package jobs

import (
	"log"

	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/repositories"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/utils"
	"github.com/robfig/cron/v3"
)

// ExpirySweeper periodically deactivates company documents whose expiry
// date has passed, so the document search stage never serves stale content.
type ExpirySweeper struct {
	cron     *cron.Cron
	dataRepo repositories.CompanyDataRepo
}

func NewExpirySweeper(dataRepo repositories.CompanyDataRepo) *ExpirySweeper {
	return &ExpirySweeper{
		cron:     cron.New(),
		dataRepo: dataRepo,
	}
}

// Start schedules the daily sweep and runs one immediately so a restart
// never serves documents that expired while the service was down.
func (s *ExpirySweeper) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("⏰ Document expiry sweeper started")

	go s.sweep()
	return nil
}

func (s *ExpirySweeper) Stop() {
	s.cron.Stop()
	log.Println("⏰ Document expiry sweeper stopped")
}

func (s *ExpirySweeper) sweep() {
	expired, err := s.dataRepo.DeactivateExpired()
	if err != nil {
		utils.LogError("expiry sweep failed", err, nil)
		return
	}
	if expired > 0 {
		utils.LogInfo("expired documents deactivated", map[string]interface{}{
			"count": expired,
		})
	}
}
