package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

type Service struct {
	Credit     CreditService
	Campaign   CampaignService
	Dispatch   DispatchService
	Reconciler ReconcilerService
	Report     ReportService
	Account    AccountService
	Scheduler  SchedulerService
	Health     HealthService
}

func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	sender MessageSender,
	breakers BreakerReporter,
	logger *zap.Logger,
) *Service {
	progress := NewRedisProgressStore(redisClient, cfg.Dispatch.ClaimTTL())
	bus := NewRedisControlBus(redisClient, logger)

	creditService := NewCreditService(repo, logger)
	campaignService := NewCampaignService(&cfg.Dispatch, repo, creditService, progress, bus, logger)
	dispatchService := NewDispatchService(&cfg.Dispatch, repo, sender, progress, bus, logger)
	schedulerService := NewSchedulerService(&cfg.Dispatch, dispatchService, bus, logger)

	return &Service{
		Credit:     creditService,
		Campaign:   campaignService,
		Dispatch:   dispatchService,
		Reconciler: NewReconcilerService(&cfg.WhatsApp.Webhook, repo, logger),
		Report:     NewReportService(repo, logger),
		Account:    NewAccountService(repo, logger),
		Scheduler:  schedulerService,
		Health:     NewHealthService(repo, redisClient, schedulerService, breakers),
	}
}
