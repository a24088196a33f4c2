package mapper

import (
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/model"

	"gorm.io/datatypes"
)

type RequestLogMapper struct{}

func NewRequestLogMapper() *RequestLogMapper {
	return &RequestLogMapper{}
}

func (m *RequestLogMapper) ToEntity(r *model.RequestLog) *entity.LogRecord {
	if r == nil {
		return nil
	}
	return &entity.LogRecord{
		Id:              r.Id,
		Seq:             r.Seq,
		Kind:            entity.LogKind(r.Kind),
		Timestamp:       r.Timestamp,
		RequestSummary:  string(r.RequestSummary),
		ResponseSummary: string(r.ResponseSummary),
	}
}

func (m *RequestLogMapper) ToModel(r *entity.LogRecord) *model.RequestLog {
	if r == nil {
		return nil
	}
	return &model.RequestLog{
		Id:              r.Id,
		Seq:             r.Seq,
		Kind:            string(r.Kind),
		Timestamp:       r.Timestamp,
		RequestSummary:  jsonOrNil(r.RequestSummary),
		ResponseSummary: jsonOrNil(r.ResponseSummary),
	}
}

func (m *RequestLogMapper) ToEntities(rows []*model.RequestLog) []*entity.LogRecord {
	out := make([]*entity.LogRecord, len(rows))
	for i, r := range rows {
		out[i] = m.ToEntity(r)
	}
	return out
}

func jsonOrNil(s string) datatypes.JSON {
	if s == "" {
		return nil
	}
	return datatypes.JSON(s)
}
