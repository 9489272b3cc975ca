package domain

// OffsetParams is the limit/offset window used by every listing endpoint.
type OffsetParams struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func DefaultOffsetParams() OffsetParams {
	return OffsetParams{Limit: 20}
}

func (p *OffsetParams) Validate() {
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

type OffsetPage[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasNext bool  `json:"has_next"`
}

func NewOffsetPage[T any](data []T, params OffsetParams, total int64) OffsetPage[T] {
	if data == nil {
		data = []T{}
	}
	return OffsetPage[T]{
		Data:    data,
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasNext: int64(params.Offset+len(data)) < total,
	}
}
