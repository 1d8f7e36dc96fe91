package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"busly/internal/shared/config"
)

// NotificationService owns the Kafka producer and the email worker pool.
type NotificationService interface {
	Producer() NotificationProducer
	Start(ctx context.Context) error
	Stop() error
}

type notificationService struct {
	producer NotificationProducer
	consumer NotificationConsumer
	workers  int

	isRunning bool
	mu        sync.Mutex
}

// NewService builds the notification pipeline from application config.
// Returns nil when Kafka is disabled; callers treat a nil service as
// notifications off.
func NewService(cfg *config.Config) (NotificationService, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	var emailService EmailService
	if cfg.Email.Enabled {
		smtp, err := NewSMTPEmailService(&SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  "Busly",
			UseTLS:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure SMTP: %w", err)
		}
		emailService = smtp
	} else {
		emailService = NewMockEmailService()
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.Topic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.Topic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroup

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	return &notificationService{
		producer: producer,
		consumer: consumer,
		workers:  3,
	}, nil
}

func (ns *notificationService) Producer() NotificationProducer {
	return ns.producer
}

func (ns *notificationService) Start(ctx context.Context) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if ns.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	if err := ns.consumer.StartConsumers(ctx, ns.workers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	ns.isRunning = true
	log.Println("✅ Notification service started")
	return nil
}

func (ns *notificationService) Stop() error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if !ns.isRunning {
		return nil
	}

	if err := ns.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}
	if err := ns.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	ns.isRunning = false
	log.Println("✅ Notification service stopped")
	return nil
}
