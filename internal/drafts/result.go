package drafts

import (
	"encoding/json"
	"fmt"
)

// ResultParam is the success parameter both read scripts use.
const ResultParam = "result"

// SuccessParams are the named values a host script hands back to its
// caller, in the order they were added.
type SuccessParams struct {
	names  []string
	values map[string]string
}

// Add sets name to value. Re-adding a name replaces its value in place.
func (p *SuccessParams) Add(name, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

func (p *SuccessParams) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Result returns the "result" parameter. ok is false when the script
// reported no result.
func (p *SuccessParams) Result() (string, bool) {
	return p.Get(ResultParam)
}

func (p *SuccessParams) Names() []string {
	return append([]string(nil), p.names...)
}

func (p *SuccessParams) Len() int { return len(p.names) }

// QueryItem is the per-draft shape of a query result.
type QueryItem struct {
	UUID       string   `json:"uuid"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsFlagged  bool     `json:"isFlagged"`
	IsArchived bool     `json:"isArchived"`
	IsTrashed  bool     `json:"isTrashed"`
}

// EmitQuery encodes a query result. An empty result emits no parameter,
// which callers read as "no result" rather than an error.
func EmitQuery(ds []Draft) (*SuccessParams, error) {
	p := &SuccessParams{}
	if len(ds) == 0 {
		return p, nil
	}
	items := make([]QueryItem, len(ds))
	for i, d := range ds {
		tags := d.Tags
		if tags == nil {
			tags = []string{}
		}
		items[i] = QueryItem{
			UUID:       d.UUID,
			Content:    d.Content,
			Tags:       tags,
			IsFlagged:  d.IsFlagged,
			IsArchived: d.IsArchived,
			IsTrashed:  d.IsTrashed,
		}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode query result: %w", err)
	}
	p.Add(ResultParam, string(b))
	return p, nil
}

// EmitGet encodes a single draft. A nil draft emits no parameter.
func EmitGet(d *Draft) (*SuccessParams, error) {
	p := &SuccessParams{}
	if d == nil {
		return p, nil
	}
	rec := *d
	normalize(&rec)
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	p.Add(ResultParam, string(b))
	return p, nil
}
