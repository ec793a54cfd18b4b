package models

import (
	"encoding/json"
	"strconv"
)

// OverrideKind tags the granularity of a manual player override. The zero
// value means no override.
type OverrideKind int

const (
	OverrideUnset OverrideKind = iota
	OverrideEnabled
	OverrideDisabled
	OverrideDisabledDays
)

func (k OverrideKind) String() string {
	switch k {
	case OverrideEnabled:
		return "enabled"
	case OverrideDisabled:
		return "disabled"
	case OverrideDisabledDays:
		return "disabledDays"
	}
	return "unset"
}

// Override is a manual enable/disable directive for one player. Days and
// Period are only meaningful for OverrideDisabledDays; Period records a
// whole-period disable that was in place before day-level entries were added.
type Override struct {
	Kind   OverrideKind
	Days   map[string]bool
	Period bool
}

// DisableState holds overrides keyed by player id. A missing key is unset.
type DisableState map[int]Override

// Clone returns a deep copy so callers can derive a new state without
// touching one that is already published.
func (s DisableState) Clone() DisableState {
	out := make(DisableState, len(s))
	for id, o := range s {
		if o.Days != nil {
			days := make(map[string]bool, len(o.Days))
			for d, v := range o.Days {
				days[d] = v
			}
			o.Days = days
		}
		out[id] = o
	}
	return out
}

// Persisted tags. "disabledForWeek" is accepted on read and treated the same as
// "disabled".
const (
	tagEnabled         = "enabled"
	tagDisabled        = "disabled"
	tagDisabledForWeek = "disabledForWeek"
)

type overrideRecord struct {
	Days map[string]bool `json:"days"`
	Week string          `json:"week,omitempty"`
}

func (o Override) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OverrideEnabled:
		return json.Marshal(tagEnabled)
	case OverrideDisabled:
		return json.Marshal(tagDisabled)
	case OverrideDisabledDays:
		rec := overrideRecord{Days: o.Days}
		if rec.Days == nil {
			rec.Days = map[string]bool{}
		}
		if o.Period {
			rec.Week = tagDisabledForWeek
		}
		return json.Marshal(rec)
	}
	return []byte("null"), nil
}

// decodeOverride parses one persisted value. Anything it does not recognise
// decodes to an unset override so that auto rules apply.
func decodeOverride(raw json.RawMessage) Override {
	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		switch tag {
		case tagEnabled:
			return Override{Kind: OverrideEnabled}
		case tagDisabled, tagDisabledForWeek:
			return Override{Kind: OverrideDisabled}
		}
		return Override{}
	}

	var rec struct {
		Days map[string]json.RawMessage `json:"days"`
		Week json.RawMessage            `json:"week"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Override{}
	}

	days := make(map[string]bool)
	for d, v := range rec.Days {
		var on bool
		if json.Unmarshal(v, &on) == nil && on {
			days[d] = true
		}
	}

	var week string
	_ = json.Unmarshal(rec.Week, &week)
	period := week == tagDisabled || week == tagDisabledForWeek

	if len(days) == 0 && !period {
		return Override{}
	}
	return Override{Kind: OverrideDisabledDays, Days: days, Period: period}
}

func (s DisableState) MarshalJSON() ([]byte, error) {
	out := make(map[string]Override, len(s))
	for id, o := range s {
		if o.Kind == OverrideUnset {
			continue
		}
		out[strconv.Itoa(id)] = o
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat persisted object. Entries with a non-numeric key
// or an unexpected value are dropped rather than failing the whole state.
func (s *DisableState) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	state := make(DisableState, len(raw))
	for key, value := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if o := decodeOverride(value); o.Kind != OverrideUnset {
			state[id] = o
		}
	}
	*s = state
	return nil
}
