package messaging

import (
	"timebank-service/src/internal/model"
	kafka "timebank-service/src/pkg/kafka/confluent"
	"timebank-service/src/pkg/log"
)

// LedgerProducer publishes balance-affecting domain events for downstream
// consumers. Publishing is best-effort, callers never roll back on failure.
type LedgerProducer struct {
	TransferProducer     Producer[*model.TransferEvent]
	JobCompletedProducer Producer[*model.JobCompletedEvent]
}

func NewLedgerProducer(producer kafka.Producer, log log.Log) *LedgerProducer {
	return &LedgerProducer{
		TransferProducer: Producer[*model.TransferEvent]{
			Producer: producer,
			Topic:    "hours-transferred",
			Log:      log,
		},
		JobCompletedProducer: Producer[*model.JobCompletedEvent]{
			Producer: producer,
			Topic:    "job-completed",
			Log:      log,
		},
	}
}

func (p *LedgerProducer) SendTransfer(event *model.TransferEvent) error {
	return p.TransferProducer.Send(event)
}

func (p *LedgerProducer) SendJobCompleted(event *model.JobCompletedEvent) error {
	return p.JobCompletedProducer.Send(event)
}
