package types

import "encoding/json"

// Parameters is a flat string-to-string mapping, used for override parameters
// of jobs, batches, pipeline nodes and schedules.
type Parameters struct {
	Entries map[string]string `json:"entries"`
}

func NewParameters() Parameters {
	return Parameters{Entries: map[string]string{}}
}

// Clone returns a copy which shares nothing with p.
func (p Parameters) Clone() Parameters {
	entries := make(map[string]string, len(p.Entries))
	for k, v := range p.Entries {
		entries[k] = v
	}
	return Parameters{Entries: entries}
}

func (p Parameters) Equal(o Parameters) bool {
	if len(p.Entries) != len(o.Entries) {
		return false
	}
	for k, v := range p.Entries {
		if ov, ok := o.Entries[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (p *Parameters) UnmarshalJSON(b []byte) error {
	raw := struct {
		Entries map[string]*string `json:"entries"`
	}{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Entries = make(map[string]string, len(raw.Entries))
	for k, v := range raw.Entries {
		if v == nil {
			p.Entries[k] = ""
			continue
		}
		p.Entries[k] = *v
	}
	return nil
}

// ParametersOf reads a Parameters-shaped field of a Record.
//
// A missing or malformed field yields empty Parameters.
func ParametersOf(r Record, key string) Parameters {
	switch x := r[key].(type) {
	case Parameters:
		return x.Clone()
	case map[string]any, Record:
		ret := NewParameters()
		entries := recordOf(x).Record("entries")
		for k := range entries {
			ret.Entries[k] = entries.String(k)
		}
		return ret
	}
	return NewParameters()
}

// AsValue converts p into the generic JSON shape stored in Records.
func (p Parameters) AsValue() map[string]any {
	entries := make(map[string]any, len(p.Entries))
	for k, v := range p.Entries {
		entries[k] = v
	}
	return map[string]any{"entries": entries}
}
