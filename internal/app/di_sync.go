package app

import (
	"fmt"
	"time"

	alertsRepository "github.com/allisson/agrosync/internal/alerts/repository"
	outboxRepository "github.com/allisson/agrosync/internal/outbox/repository"
	refdataRepository "github.com/allisson/agrosync/internal/refdata/repository"
	syncHTTP "github.com/allisson/agrosync/internal/sync/http"
	syncUseCase "github.com/allisson/agrosync/internal/sync/usecase"
	ticketsRepository "github.com/allisson/agrosync/internal/tickets/repository"
)

// MarketRepository returns the market repository based on database driver.
func (c *Container) MarketRepository() (syncUseCase.MarketRepository, error) {
	var err error
	c.marketRepoInit.Do(func() {
		c.marketRepo, err = c.initMarketRepository()
		if err != nil {
			c.initErrors["marketRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["marketRepo"]; exists {
		return nil, storedErr
	}
	return c.marketRepo, nil
}

// CropPriceRepository returns the crop price repository based on database driver.
func (c *Container) CropPriceRepository() (syncUseCase.CropPriceRepository, error) {
	var err error
	c.cropPriceRepoInit.Do(func() {
		c.cropPriceRepo, err = c.initCropPriceRepository()
		if err != nil {
			c.initErrors["cropPriceRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cropPriceRepo"]; exists {
		return nil, storedErr
	}
	return c.cropPriceRepo, nil
}

// AlertRepository returns the alert repository based on database driver.
func (c *Container) AlertRepository() (syncUseCase.AlertRepository, error) {
	var err error
	c.alertRepoInit.Do(func() {
		c.alertRepo, err = c.initAlertRepository()
		if err != nil {
			c.initErrors["alertRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["alertRepo"]; exists {
		return nil, storedErr
	}
	return c.alertRepo, nil
}

// TicketRepository returns the ticket repository based on database driver.
func (c *Container) TicketRepository() (syncUseCase.TicketRepository, error) {
	var err error
	c.ticketRepoInit.Do(func() {
		c.ticketRepo, err = c.initTicketRepository()
		if err != nil {
			c.initErrors["ticketRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ticketRepo"]; exists {
		return nil, storedErr
	}
	return c.ticketRepo, nil
}

// OutboxRepository returns the mutation ledger repository based on database driver.
func (c *Container) OutboxRepository() (syncUseCase.OutboxRepository, error) {
	var err error
	c.outboxRepoInit.Do(func() {
		c.outboxRepo, err = c.initOutboxRepository()
		if err != nil {
			c.initErrors["outboxRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxRepo"]; exists {
		return nil, storedErr
	}
	return c.outboxRepo, nil
}

// SyncUseCase returns the sync use case.
func (c *Container) SyncUseCase() (syncUseCase.SyncUseCase, error) {
	var err error
	c.syncUseCaseInit.Do(func() {
		c.syncUseCase, err = c.initSyncUseCase()
		if err != nil {
			c.initErrors["syncUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["syncUseCase"]; exists {
		return nil, storedErr
	}
	return c.syncUseCase, nil
}

// QueueUseCase returns the queue use case.
func (c *Container) QueueUseCase() (syncUseCase.QueueUseCase, error) {
	var err error
	c.queueUseCaseInit.Do(func() {
		c.queueUseCase, err = c.initQueueUseCase()
		if err != nil {
			c.initErrors["queueUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["queueUseCase"]; exists {
		return nil, storedErr
	}
	return c.queueUseCase, nil
}

// SyncHandler returns the HTTP handler for the sync endpoint.
func (c *Container) SyncHandler() (*syncHTTP.SyncHandler, error) {
	var err error
	c.syncHandlerInit.Do(func() {
		var useCase syncUseCase.SyncUseCase
		useCase, err = c.SyncUseCase()
		if err != nil {
			c.initErrors["syncHandler"] = err
			return
		}
		c.syncHandler = syncHTTP.NewSyncHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["syncHandler"]; exists {
		return nil, storedErr
	}
	return c.syncHandler, nil
}

// QueueHandler returns the HTTP handler for the queue endpoint.
func (c *Container) QueueHandler() (*syncHTTP.QueueHandler, error) {
	var err error
	c.queueHandlerInit.Do(func() {
		var useCase syncUseCase.QueueUseCase
		useCase, err = c.QueueUseCase()
		if err != nil {
			c.initErrors["queueHandler"] = err
			return
		}
		c.queueHandler = syncHTTP.NewQueueHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["queueHandler"]; exists {
		return nil, storedErr
	}
	return c.queueHandler, nil
}

// initMarketRepository creates the market repository instance.
func (c *Container) initMarketRepository() (syncUseCase.MarketRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for market repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return refdataRepository.NewMySQLMarketRepository(db), nil
	case "postgres":
		return refdataRepository.NewPostgreSQLMarketRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCropPriceRepository creates the crop price repository instance.
func (c *Container) initCropPriceRepository() (syncUseCase.CropPriceRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for crop price repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return refdataRepository.NewMySQLCropPriceRepository(db), nil
	case "postgres":
		return refdataRepository.NewPostgreSQLCropPriceRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAlertRepository creates the alert repository instance.
func (c *Container) initAlertRepository() (syncUseCase.AlertRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for alert repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return alertsRepository.NewMySQLAlertRepository(db), nil
	case "postgres":
		return alertsRepository.NewPostgreSQLAlertRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTicketRepository creates the ticket repository instance.
func (c *Container) initTicketRepository() (syncUseCase.TicketRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for ticket repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return ticketsRepository.NewMySQLTicketRepository(db), nil
	case "postgres":
		return ticketsRepository.NewPostgreSQLTicketRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initOutboxRepository creates the mutation ledger repository instance.
func (c *Container) initOutboxRepository() (syncUseCase.OutboxRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return outboxRepository.NewMySQLOutboxRepository(db), nil
	case "postgres":
		return outboxRepository.NewPostgreSQLOutboxRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSyncUseCase creates the sync use case with all its dependencies.
func (c *Container) initSyncUseCase() (syncUseCase.SyncUseCase, error) {
	marketRepo, err := c.MarketRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get market repository for sync use case: %w", err)
	}

	cropPriceRepo, err := c.CropPriceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get crop price repository for sync use case: %w", err)
	}

	alertRepo, err := c.AlertRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get alert repository for sync use case: %w", err)
	}

	ticketRepo, err := c.TicketRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket repository for sync use case: %w", err)
	}

	useCase := syncUseCase.NewSyncUseCase(
		marketRepo,
		cropPriceRepo,
		alertRepo,
		ticketRepo,
		c.config.SyncPageLimit,
		time.Now,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for sync use case: %w", err)
	}
	if businessMetrics != nil {
		useCase = syncUseCase.NewSyncUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

// initQueueUseCase creates the queue use case with all its dependencies.
func (c *Container) initQueueUseCase() (syncUseCase.QueueUseCase, error) {
	alertRepo, err := c.AlertRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get alert repository for queue use case: %w", err)
	}

	ticketRepo, err := c.TicketRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket repository for queue use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for queue use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for queue use case: %w", err)
	}

	useCase := syncUseCase.NewQueueUseCase(alertRepo, ticketRepo, outboxRepo, txManager, time.Now)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for queue use case: %w", err)
	}
	if businessMetrics != nil {
		useCase = syncUseCase.NewQueueUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
