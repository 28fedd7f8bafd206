package cmd

import (
	"context"
	"log/slog"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/events"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	publisher  ports.EventPublisher
	kafka      *events.KafkaPublisher
	matcher    services.PartnerMatcher
	uowFactory *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the application. Domain events go to Kafka when
// KAFKA_HOST is set and to the log otherwise.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	radius, err := configs.MatchRadius()
	if err != nil {
		return nil, err
	}
	matcher, err := services.NewPartnerMatcher(radius)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		logger:  logger,
		matcher: matcher,
	}

	if brokers := configs.KafkaBrokers(); len(brokers) > 0 {
		kafka, kErr := events.NewKafkaPublisher(brokers, configs.KafkaOrderChangedTopic, "marketplace-orders")
		if kErr != nil {
			return nil, kErr
		}
		root.kafka = kafka
		root.publisher = kafka
	} else {
		root.publisher = events.NewLogPublisher(logger)
	}

	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, root.publisher, logger)
	return root, nil
}

// CheckDependencies pings the database and, when configured, Kafka. Failures
// are logged: the service starts anyway and reports 503 until they recover.
func (c *CompositionRoot) CheckDependencies(ctx context.Context) {
	if sqlDB, err := c.gormDB.DB(); err != nil {
		c.logger.WarnContext(ctx, "database handle unavailable", "error", err)
	} else if err = sqlDB.PingContext(ctx); err != nil {
		c.logger.WarnContext(ctx, "database is not reachable", "error", err)
	}

	if c.kafka != nil {
		if err := c.kafka.Ping(ctx); err != nil {
			c.logger.WarnContext(ctx, "kafka is not reachable, events will be lost until it recovers", "error", err)
		}
	}
}

// Close releases clients owned by the root.
func (c *CompositionRoot) Close() {
	if c.kafka != nil {
		c.kafka.Close()
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.uow(), commands.NearestPartnerFinderFactory(c.matcher))
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	return commands.NewAssignPartnerCommandHandler(c.uow(), commands.NearestPartnerFinderFactory(c.matcher), c.logger)
}

func (c *CompositionRoot) CreateUpdateUserLocationCommandHandler() commands.UpdateUserLocationCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateUserLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateUpdateUserLocationCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAssignPartnerCommandHandler(),
		c.configs.PartnerRetrySchedule,
		commands.DefaultAssignBatchSize,
		c.logger,
	)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
