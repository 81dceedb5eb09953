package service

import (
	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/pkg/logger"

	"go.uber.org/zap"
)

// ZapObserver records storage events through a zap logger. It is the
// default sink wired by OpenStore consumers; anything implementing
// domain.Observer can replace it.
type ZapObserver struct {
	log *zap.Logger
}

func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log}
}

func (o *ZapObserver) RecordEvent(event string, fields map[string]string) {
	zapFields := make([]zap.Field, 0, len(fields)+1)
	zapFields = append(zapFields, zap.String(logger.FieldEvent, event))
	for k, v := range fields {
		zapFields = append(zapFields, zap.String(k, v))
	}
	o.log.Info("storage event", zapFields...)
}

var _ domain.Observer = (*ZapObserver)(nil)
