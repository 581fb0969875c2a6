package kafka

import (
	"fmt"
	"time"

	"timebank-service/src/pkg/log"

	k "gopkg.in/confluentinc/confluent-kafka-go.v1/kafka"
)

type producer struct {
	producer *k.Producer
	log      log.Log
}

func NewProducer(config *k.ConfigMap, logger log.Log) (Producer, error) {
	p, err := k.NewProducer(config)
	if err != nil {
		return nil, err
	}

	// drain delivery reports so the internal queue does not fill up
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *k.Message:
				if ev.TopicPartition.Error != nil {
					logger.Error("kafka-producer", fmt.Sprintf("delivery failed: %v", ev.TopicPartition.Error), "deliveryReport", "")
				}
			}
		}
	}()

	return &producer{
		producer: p,
		log:      logger,
	}, nil
}

func (p *producer) Publish(message *k.Message) error {
	deliveryChan := make(chan k.Event, 1)
	if err := p.producer.Produce(message, deliveryChan); err != nil {
		return err
	}

	select {
	case e := <-deliveryChan:
		m, ok := e.(*k.Message)
		if !ok {
			return fmt.Errorf("unexpected event type %T", e)
		}
		if m.TopicPartition.Error != nil {
			return m.TopicPartition.Error
		}
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("publish timed out")
	}
}

func (p *producer) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
