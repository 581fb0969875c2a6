package config

import (
	"timebank-service/src/internal/delivery/http"
	"timebank-service/src/internal/delivery/http/middleware"
	"timebank-service/src/internal/delivery/http/route"
	"timebank-service/src/internal/gateway/chat"
	"timebank-service/src/internal/gateway/messaging"
	"timebank-service/src/internal/gateway/notification"
	"timebank-service/src/internal/gateway/registry"
	"timebank-service/src/internal/repository"
	"timebank-service/src/internal/usecase"
	"timebank-service/src/internal/worker"
	"timebank-service/src/pkg/databases/mysql"
	kafkaPkgConfluent "timebank-service/src/pkg/kafka/confluent"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/mailer"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          mysql.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafkaPkgConfluent.Producer
	Redis       redis.UniversalClient
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	userRepository := repository.NewUserRepository(config.DB)
	walletRepository := repository.NewWalletRepository(config.DB)
	transactionRepository := repository.NewTransactionRepository(config.DB)
	jobRepository := repository.NewJobRepository(config.DB)
	jobApplicationRepository := repository.NewJobApplicationRepository(config.DB)
	adminMatchRepository := repository.NewAdminMatchRepository(config.DB)
	notificationRepository := repository.NewNotificationRepository(config.DB)
	skillRepository := repository.NewSkillRepository(config.DB)

	// setup gateways
	ledgerProducer := messaging.NewLedgerProducer(config.Producer, config.Log)
	dispatcher := notification.NewAsynqDispatcher(config.AsynqClient, config.Log)
	chatChannel := chat.NewHTTPChannel(config.Config, config.Log)
	citizenRegistry := registry.NewHTTPRegistry(config.Config, config.Log)
	mail := mailer.NewSMTPMailer(config.Config)

	// setup use cases
	userUseCase := usecase.NewUserUseCase(
		config.Log,
		config.Validate,
		config.DB,
		userRepository,
		skillRepository,
		citizenRegistry,
		dispatcher,
	)

	verificationUseCase := usecase.NewVerificationUseCase(
		config.Log,
		config.Validate,
		config.DB,
		userRepository,
		walletRepository,
		dispatcher,
	)

	transferUseCase := usecase.NewTransferUseCase(
		config.Log,
		config.Validate,
		config.DB,
		userRepository,
		walletRepository,
		transactionRepository,
		config.Config,
		ledgerProducer,
	)

	jobUseCase := usecase.NewJobUseCase(
		config.Log,
		config.Validate,
		config.DB,
		jobRepository,
		config.Redis,
	)

	jobApplicationUseCase := usecase.NewJobApplicationUseCase(
		config.Log,
		config.Validate,
		config.DB,
		userRepository,
		jobRepository,
		jobApplicationRepository,
		walletRepository,
		transactionRepository,
		config.Config,
		dispatcher,
		chatChannel,
		ledgerProducer,
	)

	matchUseCase := usecase.NewMatchUseCase(
		config.Log,
		config.Validate,
		config.DB,
		userRepository,
		jobRepository,
		jobApplicationRepository,
		adminMatchRepository,
		jobApplicationUseCase,
		chatChannel,
	)

	notificationUseCase := usecase.NewNotificationUseCase(
		config.Log,
		config.Validate,
		notificationRepository,
	)

	skillUseCase := usecase.NewSkillUseCase(
		config.Log,
		config.Validate,
		config.DB,
		skillRepository,
	)

	// setup controllers
	userController := http.NewUserController(userUseCase, config.Log)
	walletController := http.NewWalletController(transferUseCase, config.Log)
	jobController := http.NewJobController(jobUseCase, config.Log)
	jobApplicationController := http.NewJobApplicationController(jobApplicationUseCase, config.Log)
	matchController := http.NewMatchController(matchUseCase, config.Log)
	adminController := http.NewAdminController(verificationUseCase, matchUseCase, config.Log)
	notificationController := http.NewNotificationController(notificationUseCase, config.Log)
	skillController := http.NewSkillController(skillUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)
	adminMiddleware := middleware.VerifyAdmin()

	// setup queue worker
	if config.Async != nil {
		notificationWorker := worker.NewNotificationWorker(
			config.Log,
			userRepository,
			notificationRepository,
			mail,
			chatChannel,
		)
		notificationWorker.Register(config.Async)
	}

	routeConfig := route.RouteConfig{
		App:                      config.App,
		UserController:           userController,
		WalletController:         walletController,
		JobController:            jobController,
		JobApplicationController: jobApplicationController,
		MatchController:          matchController,
		AdminController:          adminController,
		NotificationController:   notificationController,
		SkillController:          skillController,
		AuthMiddleware:           authMiddleware,
		AdminMiddleware:          adminMiddleware,
	}
	routeConfig.Setup()
}
