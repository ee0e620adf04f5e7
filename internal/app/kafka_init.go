package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/furniture/internal/domain"
	"github.com/vladislavdragonenkov/furniture/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/furniture/internal/service/ordering"
)

// initKafkaPublisher создаёт паблишер событий журнала. Без брокеров или при
// ошибке подключения возвращается NoopPublisher, и работа продолжается без Kafka.
func initKafkaPublisher(brokers []string, topic string, logger *log.Entry) (domain.EventPublisher, *kafka.Producer, error) {
	if len(brokers) == 0 {
		return ordering.NoopPublisher{}, nil, nil
	}

	producer, err := kafka.NewProducer(brokers, logger.WithField("component", "kafka-producer"))
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return ordering.NoopPublisher{}, nil, err
	}

	logger.WithFields(log.Fields{
		"brokers": brokers,
		"topic":   topic,
	}).Info("kafka producer initialized")
	return kafka.NewLedgerPublisher(producer, topic), producer, nil
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) error {
	if producer == nil {
		return nil
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
		return err
	}
	logger.Info("kafka producer closed")
	return nil
}
