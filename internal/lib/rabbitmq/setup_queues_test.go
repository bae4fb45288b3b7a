package rabbitmq

import (
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTopology struct {
	exchangeErr error
	queueErr    error
	bindErr     error

	bound  []string
	closed bool
}

func (f *fakeTopology) ExchangeDeclare(string, string, bool, bool, bool, bool, amqp.Table) error {
	return f.exchangeErr
}

func (f *fakeTopology) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{Name: name}, f.queueErr
}

func (f *fakeTopology) QueueBind(name, key, _ string, _ bool, _ amqp.Table) error {
	if f.bindErr != nil {
		return f.bindErr
	}
	f.bound = append(f.bound, name+"="+key)
	return nil
}

func (f *fakeTopology) Close() error {
	f.closed = true
	return nil
}

func TestDeclareTopology(t *testing.T) {
	errBroker := errors.New("PRECONDITION_FAILED")

	tests := []struct {
		name       string
		ch         *fakeTopology
		wantErr    bool
		wantClosed bool
	}{
		{name: "all declared", ch: &fakeTopology{}},
		{name: "exchange fails", ch: &fakeTopology{exchangeErr: errBroker}, wantErr: true, wantClosed: true},
		{name: "queue fails", ch: &fakeTopology{queueErr: errBroker}, wantErr: true, wantClosed: true},
		{name: "bind fails", ch: &fakeTopology{bindErr: errBroker}, wantErr: true, wantClosed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := declareTopology(tt.ch, "grolo.audit", GetAuditQueues())
			assert.Equal(t, tt.wantClosed, tt.ch.closed)
			if tt.wantErr {
				require.ErrorIs(t, err, errBroker)
				return
			}
			require.NoError(t, err)
			assert.Len(t, tt.ch.bound, len(GetAuditQueues()))
		})
	}
}
